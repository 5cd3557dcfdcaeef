// Package rules loads the manual override set (force-up, force-broken,
// removed circuits) from a JSON file and validates it against a schema
// derived from the file shape before it reaches the calendar passes.
package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"

	"oee-lab/internal/calendar"
)

// File is the on-disk JSON shape of the override set.
type File struct {
	Up      []string `json:"up,omitempty"`
	UpMode  string   `json:"up_mode,omitempty" jsonschema:"force-up fill mode: full (default) or weekday"`
	Broken  []string `json:"broken,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Load reads and validates a rules file. A circuit listed both up and
// broken is accepted with a warning; the broken rule wins downstream.
func Load(path string) (calendar.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calendar.Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	schema, err := jsonschema.For[File](nil)
	if err != nil {
		return calendar.Rules{}, fmt.Errorf("failed to derive rules schema: %w", err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return calendar.Rules{}, fmt.Errorf("failed to resolve rules schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return calendar.Rules{}, fmt.Errorf("rules file is not valid JSON: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return calendar.Rules{}, fmt.Errorf("rules file failed validation: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return calendar.Rules{}, fmt.Errorf("failed to decode rules file: %w", err)
	}

	mode := calendar.ForceFullUp
	switch file.UpMode {
	case "", "full":
	case "weekday":
		mode = calendar.ForceWeekdayUp
	default:
		return calendar.Rules{}, fmt.Errorf("unknown up_mode %q (want full or weekday)", file.UpMode)
	}

	broken := make(map[string]bool, len(file.Broken))
	for _, c := range file.Broken {
		broken[c] = true
	}
	for _, c := range file.Up {
		if broken[c] {
			log.Warn().Str("circuit", c).Msg("Circuit forced both up and broken; broken wins")
		}
	}

	return calendar.Rules{
		Up:      file.Up,
		UpMode:  mode,
		Broken:  file.Broken,
		Removed: file.Removed,
	}, nil
}
