package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// TimeLayout is the timestamp format of the intermediate activity table.
const TimeLayout = "02/01/2006 15:04:05"

// SaveTable writes the cleaned activity table as semicolon-separated values
// with columns circuito;datastart;datastop;status. An open interval leaves
// datastop empty. The write is atomic (temp file + rename).
func SaveTable(path string, intervals []Interval) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp table file: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	records := [][]string{{"circuito", "datastart", "datastop", "status"}}
	for _, iv := range intervals {
		stop := ""
		if !iv.Stop.IsZero() {
			stop = iv.Stop.Format(TimeLayout)
		}
		status := iv.Status
		if status == "" {
			status = "UP"
		}
		records = append(records, []string{iv.Circuit, iv.Start.Format(TimeLayout), stop, status})
	}

	if err := writer.WriteAll(records); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close table file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename table file: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(intervals)).Msg("Activity table saved")
	return nil
}

// LoadTable reads the intermediate activity table back. The status column is
// optional in older files and defaults to UP. Rows with unparseable start
// dates are skipped with a warning; an unparseable or empty datastop leaves
// the interval open.
func LoadTable(path string) ([]Interval, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse activity table: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var intervals []Interval
	for i, row := range rows[1:] { // skip header
		if len(row) < 2 || row[0] == "" {
			continue
		}
		start, err := time.Parse(TimeLayout, row[1])
		if err != nil {
			log.Warn().Str("path", path).Int("row", i+2).Msg("Skipping row with invalid start date")
			continue
		}

		iv := Interval{Circuit: row[0], Start: start, Status: "UP"}
		if len(row) > 2 && row[2] != "" {
			if stop, err := time.Parse(TimeLayout, row[2]); err == nil {
				iv.Stop = stop
			}
		}
		if len(row) > 3 && row[3] != "" {
			iv.Status = row[3]
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}
