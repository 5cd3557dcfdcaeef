package calendar

import (
	"slices"
	"time"
)

// ForceMode selects how a force-up rule fills a circuit's month.
type ForceMode int

const (
	// ForceFullUp marks every day of the month UP.
	ForceFullUp ForceMode = iota
	// ForceWeekdayUp marks weekdays UP and weekends PP.
	ForceWeekdayUp
)

// Rules is the manual override set applied after activity reconciliation.
// A circuit listed in both Up and Broken ends up broken.
type Rules struct {
	Up      []string
	UpMode  ForceMode
	Broken  []string
	Removed []string
}

// Options tunes the usage filter.
type Options struct {
	MinUpDays      int
	ApplyMinUpDays bool
}

// BaselineCircuit is the synthetic reference row appended to every report.
// It is not production data and never enters the aggregation.
const BaselineCircuit = "iDevice"

// Pass is one named grid transformation. Passes run in order; a later pass
// wins over an earlier one for the same circuit, which makes the precedence
// default < activity < force-up < force-broken auditable step by step.
type Pass struct {
	Name  string
	Apply func(g *Grid)
}

// Result carries the final render grid and the circuits that count toward
// the OEE aggregation.
type Result struct {
	Grid *Grid
	Used []string
}

// Finalize runs the override and filter passes over the reconciled grid and
// appends the baseline row. Blanked circuits stay in the grid as empty rows
// but are excluded from Used.
func Finalize(g *Grid, rules Rules, opts Options) *Result {
	for _, pass := range Passes(rules, opts) {
		pass.Apply(g)
	}

	var used []string
	for _, circuit := range g.Order {
		if circuit != BaselineCircuit && !isBlankRow(g.Rows[circuit]) {
			used = append(used, circuit)
		}
	}
	return &Result{Grid: g, Used: used}
}

// Passes builds the ordered transformation list for the given rules.
func Passes(rules Rules, opts Options) []Pass {
	forced := make(map[string]bool)
	for _, c := range rules.Up {
		forced[c] = true
	}
	for _, c := range rules.Broken {
		forced[c] = true
	}

	return []Pass{
		{Name: "force-up", Apply: func(g *Grid) {
			for _, circuit := range rules.Up {
				row, ok := g.Rows[circuit]
				if !ok {
					continue
				}
				for d := range row {
					if rules.UpMode == ForceWeekdayUp && isWeekend(g.WeekdayOf(d+1)) {
						row[d] = StatusPlanned
					} else {
						row[d] = StatusUp
					}
				}
			}
		}},
		{Name: "force-broken", Apply: func(g *Grid) {
			for _, circuit := range rules.Broken {
				row, ok := g.Rows[circuit]
				if !ok {
					continue
				}
				for d := range row {
					row[d] = StatusBroken
				}
			}
		}},
		{Name: "blank-inactive", Apply: func(g *Grid) {
			for _, circuit := range g.Order {
				if forced[circuit] {
					continue
				}
				if !hasActivity(g.Rows[circuit]) {
					blankRow(g.Rows[circuit])
				}
			}
		}},
		{Name: "min-up-days", Apply: func(g *Grid) {
			if !opts.ApplyMinUpDays {
				return
			}
			for _, circuit := range g.Order {
				if forced[circuit] {
					continue
				}
				if countStatus(g.Rows[circuit], StatusUp) < opts.MinUpDays {
					blankRow(g.Rows[circuit])
				}
			}
		}},
		{Name: "blank-removed", Apply: func(g *Grid) {
			for _, circuit := range rules.Removed {
				if row, ok := g.Rows[circuit]; ok {
					blankRow(row)
				}
			}
		}},
		{Name: "baseline", Apply: func(g *Grid) {
			row := make([]Status, g.Days)
			for d := range row {
				if isWeekend(g.WeekdayOf(d + 1)) {
					row[d] = StatusPlanned
				} else {
					row[d] = StatusUp
				}
			}
			g.Rows[BaselineCircuit] = row
			if !slices.Contains(g.Order, BaselineCircuit) {
				g.Order = append([]string{BaselineCircuit}, g.Order...)
			}
		}},
	}
}

// hasActivity reports whether a row carries anything beyond the PP/SD
// calendar defaults.
func hasActivity(row []Status) bool {
	for _, s := range row {
		if s == StatusUp || s == StatusBroken {
			return true
		}
	}
	return false
}

func countStatus(row []Status, status Status) int {
	n := 0
	for _, s := range row {
		if s == status {
			n++
		}
	}
	return n
}

func blankRow(row []Status) {
	for d := range row {
		row[d] = StatusBlank
	}
}

func isBlankRow(row []Status) bool {
	for _, s := range row {
		if s != StatusBlank {
			return false
		}
	}
	return true
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
