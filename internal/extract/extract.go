package extract

import (
	"cmp"
	"regexp"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Interval is one circuit activity window recovered from the raw logs.
// A zero Stop means the activity was still open when logged.
type Interval struct {
	Circuit string
	Start   time.Time
	Stop    time.Time
	Status  string // UP, PQ, PP or SD; empty reads as UP downstream
}

var (
	circuitPattern  = regexp.MustCompile(`(?i)Circuit\d+`)
	datetimePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s+\d{1,2}:\d{2}(?::\d{2})?\b`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

// Extract scans raw log text for "Circuit<N>" markers. Each marker owns the
// span up to the next marker; the first datetime-shaped token in the span is
// the interval start, the second (if any) the stop. Records whose start does
// not parse under the selected convention are dropped; a bad or missing stop
// leaves the interval open. Returns the cleaned intervals, the distinct
// circuit identifiers sorted by their numeric suffix, and ok=false when no
// valid record could be extracted.
func Extract(text string, dayFirst bool) ([]Interval, []string, bool) {
	if text == "" {
		return nil, nil, false
	}

	markers := circuitPattern.FindAllStringIndex(text, -1)
	if markers == nil {
		log.Warn().Msg("No circuit markers found in input")
		return nil, nil, false
	}

	var intervals []Interval
	dropped := 0
	for i, marker := range markers {
		span := text[marker[1]:]
		if i+1 < len(markers) {
			span = text[marker[1]:markers[i+1][0]]
		}

		stamps := datetimePattern.FindAllString(span, 2)
		if len(stamps) == 0 {
			continue
		}

		start, ok := ParseStamp(stamps[0], dayFirst)
		if !ok {
			dropped++
			continue
		}

		iv := Interval{Circuit: text[marker[0]:marker[1]], Start: start}
		if len(stamps) > 1 {
			if stop, ok := ParseStamp(stamps[1], dayFirst); ok {
				iv.Stop = stop
			}
		}
		intervals = append(intervals, iv)
	}

	if dropped > 0 {
		log.Warn().Int("count", dropped).Msg("Dropped records with unparseable start dates")
	}
	if len(intervals) == 0 {
		return nil, nil, false
	}

	slices.SortFunc(intervals, func(a, b Interval) int {
		if c := cmp.Compare(CircuitNumber(a.Circuit), CircuitNumber(b.Circuit)); c != 0 {
			return c
		}
		return a.Start.Compare(b.Start)
	})

	return intervals, Circuits(intervals), true
}

// Circuits returns the distinct circuit identifiers in the intervals,
// sorted by numeric suffix.
func Circuits(intervals []Interval) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, iv := range intervals {
		if !seen[iv.Circuit] {
			seen[iv.Circuit] = true
			ids = append(ids, iv.Circuit)
		}
	}
	SortCircuits(ids)
	return ids
}

// SortCircuits orders circuit identifiers by the integer embedded in them,
// falling back to the lexical name for equal numbers.
func SortCircuits(ids []string) {
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(CircuitNumber(a), CircuitNumber(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// CircuitNumber extracts the leading integer from a circuit identifier.
// Identifiers without digits sort first (-1).
func CircuitNumber(id string) int {
	s := digitsPattern.FindString(id)
	if s == "" {
		return -1
	}
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
