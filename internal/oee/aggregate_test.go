package oee

import (
	"testing"
	"time"

	"oee-lab/internal/calendar"
)

// statusRow builds a month row with the given day counts, in order UP, PQ,
// PP, SD.
func statusRow(up, pq, pp, sd int) []calendar.Status {
	var row []calendar.Status
	add := func(n int, s calendar.Status) {
		for i := 0; i < n; i++ {
			row = append(row, s)
		}
	}
	add(up, calendar.StatusUp)
	add(pq, calendar.StatusBroken)
	add(pp, calendar.StatusPlanned)
	add(sd, calendar.StatusNoDemand)
	return row
}

func juneResult(rows map[string][]calendar.Status, used []string) *calendar.Result {
	order := append([]string(nil), used...)
	return &calendar.Result{
		Grid: &calendar.Grid{Year: 2025, Month: time.June, Days: 30, Order: order, Rows: rows},
		Used: used,
	}
}

func TestAggregate(t *testing.T) {
	res := juneResult(map[string][]calendar.Status{
		"Circuit1": statusRow(10, 2, 9, 9),
		"Circuit2": statusRow(20, 0, 9, 1),
	}, []string{"Circuit1", "Circuit2"})

	s := Aggregate(res, Inputs{
		EnsaiosSolicitados: 10,
		EnsaiosExecutados:  8,
		RelatoriosEmitidos: 12,
		RelatoriosNoPrazo:  9,
		Capacidade:         375,
	})

	if s.UpDays != 30 || s.BrokenDays != 2 || s.PlannedDays != 18 || s.NoDemandDays != 10 {
		t.Errorf("Unexpected totals: UP=%d PQ=%d PP=%d SD=%d", s.UpDays, s.BrokenDays, s.PlannedDays, s.NoDemandDays)
	}
	if s.CircuitsUsed != 2 {
		t.Errorf("Expected 2 used circuits, got %d", s.CircuitsUsed)
	}

	// avgUP=15, avgPQ=1, avgPP=9, avgSD=5.
	// tempoDisponivel = 30-9-5 = 16; tempoRealOp = 15-1-5 = 9.
	if s.TempoDisponivel != 16 || s.TempoRealOp != 9 {
		t.Errorf("Expected tempo 16/9, got %v/%v", s.TempoDisponivel, s.TempoRealOp)
	}
	if s.Availability != 56.25 {
		t.Errorf("Expected availability 56.25, got %v", s.Availability)
	}
	if s.Performance != 80 {
		t.Errorf("Expected performance 80, got %v", s.Performance)
	}
	if s.Quality != 75 {
		t.Errorf("Expected quality 75, got %v", s.Quality)
	}
	if s.OEE != 33.75 { // 0.5625 * 0.8 * 0.75
		t.Errorf("Expected OEE 33.75, got %v", s.OEE)
	}
}

func TestAggregateCeilingDisplay(t *testing.T) {
	res := juneResult(map[string][]calendar.Status{
		"Circuit1": statusRow(4, 0, 13, 13),
		"Circuit2": statusRow(3, 0, 13, 14),
		"Circuit3": statusRow(3, 0, 13, 14),
	}, []string{"Circuit1", "Circuit2", "Circuit3"})

	s := Aggregate(res, Inputs{})
	// avgUP = 10/3 = 3.33; display rounds up.
	if s.AvgUpDays != 4 {
		t.Errorf("Expected ceiling-rounded average 4, got %d", s.AvgUpDays)
	}
}

func TestAggregateZeroGuards(t *testing.T) {
	res := juneResult(map[string][]calendar.Status{}, nil)
	s := Aggregate(res, Inputs{EnsaiosSolicitados: 0, RelatoriosEmitidos: 0})

	if s.Availability != 0 || s.Performance != 0 || s.Quality != 0 || s.OEE != 0 {
		t.Errorf("Expected zeroed summary for empty month, got %+v", s)
	}
}

func TestAggregatePerformanceZeroDenominator(t *testing.T) {
	res := juneResult(map[string][]calendar.Status{
		"Circuit1": statusRow(21, 0, 9, 0),
	}, []string{"Circuit1"})

	s := Aggregate(res, Inputs{EnsaiosSolicitados: 0, EnsaiosExecutados: 5})
	if s.Performance != 0 {
		t.Errorf("Expected performance 0 with zero requested tests, got %v", s.Performance)
	}
}

func TestAggregateNegativeAvailableTime(t *testing.T) {
	// All days PP+SD: tempoDisponivel = 0, availability guarded to 0.
	res := juneResult(map[string][]calendar.Status{
		"Circuit1": statusRow(0, 0, 15, 15),
	}, []string{"Circuit1"})

	s := Aggregate(res, Inputs{EnsaiosSolicitados: 1, EnsaiosExecutados: 1, RelatoriosEmitidos: 1, RelatoriosNoPrazo: 1})
	if s.Availability != 0 || s.OEE != 0 {
		t.Errorf("Expected guarded availability 0, got %+v", s)
	}
}
