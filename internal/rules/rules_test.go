package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"oee-lab/internal/calendar"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `{
		"up": ["Circuit1", "Circuit2"],
		"up_mode": "weekday",
		"broken": ["Circuit3"],
		"removed": ["Circuit4"]
	}`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := calendar.Rules{
		Up:      []string{"Circuit1", "Circuit2"},
		UpMode:  calendar.ForceWeekdayUp,
		Broken:  []string{"Circuit3"},
		Removed: []string{"Circuit4"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestLoadRulesDefaultsToFullUp(t *testing.T) {
	path := writeRules(t, `{"up": ["Circuit1"]}`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.UpMode != calendar.ForceFullUp {
		t.Errorf("Expected default full-up mode, got %v", got.UpMode)
	}
}

func TestLoadRulesUnknownMode(t *testing.T) {
	path := writeRules(t, `{"up": ["Circuit1"], "up_mode": "sometimes"}`)
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for unknown up_mode")
	}
}

func TestLoadRulesSchemaViolation(t *testing.T) {
	// "up" must be an array of strings, not a string.
	path := writeRules(t, `{"up": "Circuit1"}`)
	if _, err := Load(path); err == nil {
		t.Error("Expected schema validation to reject non-array up field")
	}
}

func TestLoadRulesInvalidJSON(t *testing.T) {
	path := writeRules(t, `{"up": [`)
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected an error for a missing rules file")
	}
}

func TestLoadRulesBothUpAndBroken(t *testing.T) {
	// Accepted with a warning; the broken rule wins downstream.
	path := writeRules(t, `{"up": ["Circuit1"], "broken": ["Circuit1"]}`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Up) != 1 || len(got.Broken) != 1 {
		t.Errorf("Expected both lists preserved, got %+v", got)
	}
}
