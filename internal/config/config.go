package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	UploadDir    string // where raw .txt equipment logs are dropped
	OutputDir    string // where reports and the history file land
	ProcessedCSV string // intermediate activity table
	HistoryCSV   string // monthly OEE time series
	Capacity     int    // total circuit capacity shown on the report banner
	Locale       string // BCP 47 tag for report header strings
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first (highest priority when installed standalone)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	uploadDir := getEnv("UPLOAD_FOLDER", "dados_brutos")
	outputDir := getEnv("OUTPUT_FOLDER", "relatorios")

	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create data directory")
		}
	}

	capacity, err := strconv.Atoi(getEnv("CAPACITY", "375"))
	if err != nil || capacity < 1 {
		log.Warn().Str("value", os.Getenv("CAPACITY")).Msg("Invalid CAPACITY, using default 375")
		capacity = 375
	}

	cfg := &AppConfig{
		UploadDir:    uploadDir,
		OutputDir:    outputDir,
		ProcessedCSV: filepath.Join(outputDir, getEnv("PROCESSED_CSV", "dados_processados.csv")),
		HistoryCSV:   filepath.Join(outputDir, getEnv("HISTORY_CSV", "historico_oee.csv")),
		Capacity:     capacity,
		Locale:       getEnv("REPORT_LOCALE", "pt-BR"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
