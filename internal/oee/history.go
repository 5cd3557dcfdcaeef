package oee

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Entry is one recorded month of the OEE time series.
type Entry struct {
	Year         int
	Month        int
	Availability float64
	Performance  float64
	Quality      float64
	OEE          float64
}

// History is the CSV-backed monthly OEE time series. There is at most one
// row per (year, month); recording a month again replaces its row.
type History struct {
	Path string
}

// Load reads all history rows. A missing file is an empty history, not an
// error. Rows that do not parse are skipped with a warning.
func (h History) Load() ([]Entry, error) {
	file, err := os.Open(h.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, row := range rows[1:] { // skip header
		if len(row) < 6 {
			continue
		}
		year, errY := strconv.Atoi(row[0])
		month, errM := strconv.Atoi(row[1])
		if errY != nil || errM != nil {
			log.Warn().Str("path", h.Path).Int("row", i+2).Msg("Skipping invalid history row")
			continue
		}
		entries = append(entries, Entry{
			Year:         year,
			Month:        month,
			Availability: parseFloat(row[2]),
			Performance:  parseFloat(row[3]),
			Quality:      parseFloat(row[4]),
			OEE:          parseFloat(row[5]),
		})
	}
	return entries, nil
}

// Record upserts the summary for its (year, month) and rewrites the series
// sorted ascending. The file is created on first use.
func (h History) Record(s Summary) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Year == s.Year && e.Month == s.Month
	})
	entries = append(entries, Entry{
		Year:         s.Year,
		Month:        s.Month,
		Availability: s.Availability,
		Performance:  s.Performance,
		Quality:      s.Quality,
		OEE:          s.OEE,
	})

	return h.save(entries)
}

// Remove deletes the row for (year, month) if present.
func (h History) Remove(year, month int) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}
	trimmed := slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Year == year && e.Month == month
	})
	if len(trimmed) == len(entries) {
		log.Warn().Int("year", year).Int("month", month).Msg("No history row to remove")
		return nil
	}
	return h.save(trimmed)
}

func (h History) save(entries []Entry) error {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})

	tmpPath := h.Path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	writer := csv.NewWriter(file)
	records := [][]string{{"ano", "mes", "disponibilidade", "performance", "qualidade", "oee_final"}}
	for _, e := range entries {
		records = append(records, []string{
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Month),
			formatFloat(e.Availability),
			formatFloat(e.Performance),
			formatFloat(e.Quality),
			formatFloat(e.OEE),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close history file: %w", err)
	}
	if err := os.Rename(tmpPath, h.Path); err != nil {
		return fmt.Errorf("failed to rename history file: %w", err)
	}

	log.Info().Str("path", h.Path).Int("count", len(entries)).Msg("History saved")
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
