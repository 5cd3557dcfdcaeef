package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"oee-lab/internal/calendar"
	"oee-lab/internal/config"
	"oee-lab/internal/extract"
	"oee-lab/internal/oee"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.AppConfig{
		UploadDir:    dir,
		OutputDir:    dir,
		ProcessedCSV: filepath.Join(dir, "dados_processados.csv"),
		HistoryCSV:   filepath.Join(dir, "historico_oee.csv"),
		Capacity:     375,
		Locale:       "pt-BR",
	}
}

// End to end: one activity window on June 5, 2025 yields UP on that day only
// and weekday/weekend defaults everywhere else.
func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	raw := "Circuit101 started 05/06/2025 08:00 and finished 05/06/2025 18:00"
	intervals, circuits, ok := extract.Extract(raw, true)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	if len(circuits) != 1 || circuits[0] != "Circuit101" {
		t.Fatalf("Unexpected circuits: %v", circuits)
	}
	if err := extract.SaveTable(cfg.ProcessedCSV, intervals); err != nil {
		t.Fatal(err)
	}

	res, err := Generate(cfg, Params{
		Year:  2025,
		Month: time.June,
		Inputs: oee.Inputs{
			EnsaiosSolicitados: 10,
			EnsaiosExecutados:  10,
			RelatoriosEmitidos: 5,
			RelatoriosNoPrazo:  5,
			Capacidade:         375,
		},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	row := res.Grid.Rows["Circuit101"]
	for d := 1; d <= 30; d++ {
		want := calendar.StatusNoDemand
		if wd := res.Grid.WeekdayOf(d); wd == time.Saturday || wd == time.Sunday {
			want = calendar.StatusPlanned
		}
		if d == 5 {
			want = calendar.StatusUp
		}
		if row[d-1] != want {
			t.Errorf("June %d: expected %v, got %v", d, want, row[d-1])
		}
	}

	if len(res.Used) != 1 || res.Used[0] != "Circuit101" {
		t.Errorf("Expected Circuit101 used, got %v", res.Used)
	}
	if res.Summary.Year != 2025 || res.Summary.Month != 6 {
		t.Errorf("Unexpected summary period: %d/%d", res.Summary.Month, res.Summary.Year)
	}
	if res.Summary.Performance != 100 || res.Summary.Quality != 100 {
		t.Errorf("Expected 100%% performance and quality, got %v/%v", res.Summary.Performance, res.Summary.Quality)
	}

	// Workbook and history both land in the output folder.
	if res.ReportPath == "" {
		t.Fatal("Expected a report path")
	}
	if _, err := os.Stat(res.ReportPath); err != nil {
		t.Errorf("Expected workbook on disk: %v", err)
	}
	history, err := oee.History{Path: cfg.HistoryCSV}.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Year != 2025 || history[0].Month != 6 {
		t.Errorf("Expected one history row for 2025/6, got %+v", history)
	}
}

func TestGenerateRerunUpsertsHistory(t *testing.T) {
	cfg := testConfig(t)
	intervals, _, _ := extract.Extract("Circuit7 01/06/2025 08:00 10/06/2025 18:00", true)
	if err := extract.SaveTable(cfg.ProcessedCSV, intervals); err != nil {
		t.Fatal(err)
	}

	p := Params{Year: 2025, Month: time.June, Inputs: oee.Inputs{EnsaiosSolicitados: 4, EnsaiosExecutados: 2}}
	if _, err := Generate(cfg, p); err != nil {
		t.Fatal(err)
	}
	p.Inputs.EnsaiosExecutados = 4
	if _, err := Generate(cfg, p); err != nil {
		t.Fatal(err)
	}

	history, err := oee.History{Path: cfg.HistoryCSV}.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected a single 2025/6 row after rerun, got %d", len(history))
	}
	if history[0].Performance != 100 {
		t.Errorf("Expected second run's performance recorded, got %v", history[0].Performance)
	}
}

func TestGenerateRemovedCircuitStaysBlank(t *testing.T) {
	cfg := testConfig(t)
	intervals, _, _ := extract.Extract("Circuit7 01/06/2025 08:00 10/06/2025 18:00", true)
	if err := extract.SaveTable(cfg.ProcessedCSV, intervals); err != nil {
		t.Fatal(err)
	}

	res, err := Generate(cfg, Params{
		Year:  2025,
		Month: time.June,
		Rules: calendar.Rules{Removed: []string{"Circuit7"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Removed circuits render as blank rows but never aggregate.
	if len(res.Used) != 0 {
		t.Errorf("Expected no used circuits, got %v", res.Used)
	}
	row, ok := res.Grid.Rows["Circuit7"]
	if !ok {
		t.Fatal("Expected removed circuit to keep its (blank) row")
	}
	for d, s := range row {
		if s != calendar.StatusBlank {
			t.Errorf("Day %d: expected blank, got %v", d+1, s)
		}
	}
}

func TestGenerateNoCircuits(t *testing.T) {
	cfg := testConfig(t)
	if err := extract.SaveTable(cfg.ProcessedCSV, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(cfg, Params{Year: 2025, Month: time.June}); err == nil {
		t.Error("Expected an error when there is nothing to report")
	}
}

func TestGenerateMissingTable(t *testing.T) {
	cfg := testConfig(t)
	if _, err := Generate(cfg, Params{Year: 2025, Month: time.June}); err == nil {
		t.Error("Expected an error when the processed table is missing")
	}
}
