// Package pipeline wires the report generation end to end: intermediate
// table → calendar grid → override passes → OEE aggregation → history
// upsert → workbook. Each Generate call is stateless; all inputs arrive as
// parameters and all outputs leave in the Result.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"oee-lab/internal/calendar"
	"oee-lab/internal/config"
	"oee-lab/internal/extract"
	"oee-lab/internal/oee"
	"oee-lab/internal/report"
)

// Params are the per-invocation report settings.
type Params struct {
	Year    int
	Month   time.Month
	Rules   calendar.Rules
	Options calendar.Options
	Inputs  oee.Inputs
}

// Result is everything a caller can display or export after one run.
// ReportPath is empty when the workbook could not be written; the summary
// and grid are still valid in that case.
type Result struct {
	Summary    oee.Summary
	Grid       *calendar.Grid
	Used       []string
	ReportPath string
}

// Generate produces the monthly report from the processed activity table.
func Generate(cfg *config.AppConfig, p Params) (*Result, error) {
	intervals, err := extract.LoadTable(cfg.ProcessedCSV)
	if err != nil {
		return nil, err
	}

	circuits := processingSet(intervals, p.Rules)
	if len(circuits) == 0 {
		return nil, fmt.Errorf("no circuits to report for %02d/%d", p.Month, p.Year)
	}

	grid := calendar.Build(p.Year, p.Month, circuits, intervals)
	res := calendar.Finalize(grid, p.Rules, p.Options)
	summary := oee.Aggregate(res, p.Inputs)

	history := oee.History{Path: cfg.HistoryCSV}
	if err := history.Record(summary); err != nil {
		log.Error().Err(err).Msg("Failed to record history; report continues")
	}

	reportPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("Excel_OEE_%d_%02d.xlsx", p.Year, p.Month))
	loc := report.ForTag(cfg.Locale)
	if err := report.Write(reportPath, res.Grid, summary, p.Inputs, loc); err != nil {
		log.Error().Err(err).Str("path", reportPath).Msg("Failed to write workbook")
		reportPath = ""
	}

	log.Info().
		Int("year", p.Year).Int("month", int(p.Month)).
		Int("circuits", len(res.Used)).
		Float64("oee", summary.OEE).
		Msg("Report generated")

	return &Result{
		Summary:    summary,
		Grid:       res.Grid,
		Used:       res.Used,
		ReportPath: reportPath,
	}, nil
}

// processingSet is the union of circuits seen in the activity data and the
// force-rule lists. Removed circuits stay in the set so they can render as
// blank rows; the blank-removed pass keeps them out of the aggregation.
func processingSet(intervals []extract.Interval, rules calendar.Rules) []string {
	seen := make(map[string]bool)
	var circuits []string
	add := func(ids []string) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				circuits = append(circuits, id)
			}
		}
	}
	add(extract.Circuits(intervals))
	add(rules.Up)
	add(rules.Broken)
	add(rules.Removed)
	extract.SortCircuits(circuits)
	return circuits
}
