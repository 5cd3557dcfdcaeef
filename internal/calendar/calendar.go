package calendar

import (
	"time"

	"oee-lab/internal/extract"
)

// Status is the daily state of one circuit.
type Status string

const (
	StatusUp       Status = "UP" // productive / in use
	StatusBroken   Status = "PQ" // broken / out of service
	StatusPlanned  Status = "PP" // planned stop (weekend default)
	StatusNoDemand Status = "SD" // weekday with no recorded activity
	StatusBlank    Status = ""   // rendered empty, excluded from aggregation
)

// Grid holds one status per circuit per day of the target month.
// Rows are indexed day-1 first (index 0 = day 1).
type Grid struct {
	Year  int
	Month time.Month
	Days  int
	Order []string
	Rows  map[string][]Status
}

// Build enumerates every day of the target month for the given circuits and
// reconciles the activity intervals onto it. Every cell starts at the
// weekday default (PP on Saturday/Sunday, SD otherwise); intervals
// overlapping the month overwrite the covered days with their status
// (UP when unset). Open-ended intervals run to the last day of the month;
// intervals fully outside the month are ignored; an interval whose clamped
// end precedes its clamped start covers a single day.
func Build(year int, month time.Month, circuits []string, intervals []extract.Interval) *Grid {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1) // first instant of the last day
	days := monthEnd.Day()

	order := append([]string(nil), circuits...)
	extract.SortCircuits(order)

	g := &Grid{Year: year, Month: month, Days: days, Order: order, Rows: make(map[string][]Status, len(order))}
	for _, circuit := range order {
		row := make([]Status, days)
		for d := 0; d < days; d++ {
			row[d] = defaultStatus(monthStart.AddDate(0, 0, d).Weekday())
		}
		g.Rows[circuit] = row
	}

	for _, iv := range intervals {
		row, ok := g.Rows[iv.Circuit]
		if !ok {
			continue
		}

		stop := iv.Stop
		if stop.IsZero() {
			stop = monthEnd
		}
		start := truncateToDay(iv.Start)
		stop = truncateToDay(stop)
		if start.After(monthEnd) || stop.Before(monthStart) {
			continue
		}

		if start.Before(monthStart) {
			start = monthStart
		}
		if stop.After(monthEnd) {
			stop = monthEnd
		}
		if stop.Before(start) {
			stop = start
		}

		status := Status(iv.Status)
		switch status {
		case StatusUp, StatusBroken, StatusPlanned, StatusNoDemand:
		default:
			status = StatusUp
		}
		for d := start.Day(); d <= stop.Day(); d++ {
			row[d-1] = status
		}
	}

	return g
}

// WeekdayOf returns the weekday of the given day of the grid's month.
func (g *Grid) WeekdayOf(day int) time.Weekday {
	return time.Date(g.Year, g.Month, day, 0, 0, 0, 0, time.UTC).Weekday()
}

func defaultStatus(wd time.Weekday) Status {
	if wd == time.Saturday || wd == time.Sunday {
		return StatusPlanned
	}
	return StatusNoDemand
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
