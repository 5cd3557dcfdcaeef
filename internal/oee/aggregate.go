package oee

import (
	"math"

	"oee-lab/internal/calendar"
)

// Inputs are the externally supplied monthly counters that feed the
// performance and quality ratios, plus the reporting-only capacity figure.
type Inputs struct {
	EnsaiosSolicitados int // tests requested
	EnsaiosExecutados  int // tests performed
	RelatoriosEmitidos int // reports issued
	RelatoriosNoPrazo  int // reports on time
	Capacidade         int // circuit capacity shown on the report banner
}

// Summary is the reduced monthly OEE figure. Percentages are stored as
// value*100 rounded to two decimals. The Avg* fields are the per-circuit
// day counts ceiling-rounded for display; the ratios are computed from the
// unrounded averages.
type Summary struct {
	Year  int
	Month int

	UpDays       int
	BrokenDays   int
	PlannedDays  int
	NoDemandDays int

	AvgUpDays       int
	AvgBrokenDays   int
	AvgPlannedDays  int
	AvgNoDemandDays int

	CircuitsUsed int
	Capacidade   int

	TempoDisponivel float64 // available days: month days - avg PP - avg SD
	TempoRealOp     float64 // real operating days: avg UP - avg PQ - avg SD

	Availability float64
	Performance  float64
	Quality      float64
	OEE          float64
}

// Aggregate reduces the used-circuit sub-grid into per-status totals and the
// three OEE ratios. Every division is zero-guarded: a degenerate denominator
// yields a 0 ratio rather than an error, so a month with no usable data
// still produces a (zeroed) summary.
func Aggregate(res *calendar.Result, inputs Inputs) Summary {
	s := Summary{
		Year:         res.Grid.Year,
		Month:        int(res.Grid.Month),
		CircuitsUsed: len(res.Used),
		Capacidade:   inputs.Capacidade,
	}

	for _, circuit := range res.Used {
		for _, status := range res.Grid.Rows[circuit] {
			switch status {
			case calendar.StatusUp:
				s.UpDays++
			case calendar.StatusBroken:
				s.BrokenDays++
			case calendar.StatusPlanned:
				s.PlannedDays++
			case calendar.StatusNoDemand:
				s.NoDemandDays++
			}
		}
	}

	avgUp := safeDiv(float64(s.UpDays), float64(s.CircuitsUsed))
	avgBroken := safeDiv(float64(s.BrokenDays), float64(s.CircuitsUsed))
	avgPlanned := safeDiv(float64(s.PlannedDays), float64(s.CircuitsUsed))
	avgNoDemand := safeDiv(float64(s.NoDemandDays), float64(s.CircuitsUsed))

	s.AvgUpDays = int(math.Ceil(avgUp))
	s.AvgBrokenDays = int(math.Ceil(avgBroken))
	s.AvgPlannedDays = int(math.Ceil(avgPlanned))
	s.AvgNoDemandDays = int(math.Ceil(avgNoDemand))

	// Carried over from the historical spreadsheet: tempoRealOp subtracts
	// the no-demand average even though tempoDisponivel already removed it.
	tempoDisponivel := float64(res.Grid.Days) - avgPlanned - avgNoDemand
	tempoRealOp := avgUp - avgBroken - avgNoDemand
	s.TempoDisponivel = math.Round(tempoDisponivel*100) / 100
	s.TempoRealOp = math.Round(tempoRealOp*100) / 100

	availability := 0.0
	if tempoDisponivel > 0 {
		availability = tempoRealOp / tempoDisponivel
	}
	performance := safeDiv(float64(inputs.EnsaiosExecutados), float64(inputs.EnsaiosSolicitados))
	quality := safeDiv(float64(inputs.RelatoriosNoPrazo), float64(inputs.RelatoriosEmitidos))

	s.Availability = percent(availability)
	s.Performance = percent(performance)
	s.Quality = percent(quality)
	s.OEE = percent(availability * performance * quality)

	return s
}

func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func percent(ratio float64) float64 {
	return math.Round(ratio*100*100) / 100
}
