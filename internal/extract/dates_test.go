package extract

import (
	"testing"
	"time"
)

func TestParseStampDayFirst(t *testing.T) {
	got, ok := ParseStamp("05/06/2025 08:00", true)
	if !ok {
		t.Fatal("Expected dd/mm stamp to parse")
	}
	want := time.Date(2025, time.June, 5, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseStampMonthFirst(t *testing.T) {
	got, ok := ParseStamp("05/06/2025 08:00", false)
	if !ok {
		t.Fatal("Expected mm/dd stamp to parse")
	}
	if got.Month() != time.May || got.Day() != 6 {
		t.Errorf("Expected May 6, got %v", got)
	}
}

func TestParseStampVariants(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"5/6/25 7:30", time.Date(2025, time.June, 5, 7, 30, 0, 0, time.UTC)},
		{"05-06-2025 08:00:45", time.Date(2025, time.June, 5, 8, 0, 45, 0, time.UTC)},
		{"31/12/2024 23:59:59", time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)},
		{"05/06/2025", time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		{"  05/06/2025 08:00  ", time.Date(2025, time.June, 5, 8, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseStamp(c.in, true)
		if !ok {
			t.Errorf("Expected %q to parse", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("%q: expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestParseStampRejectsMeridiem(t *testing.T) {
	for _, in := range []string{"05/06/2025 8:00 AM", "05/06/2025 8:00 pm", "05/06/2025 8:00 Pm"} {
		if _, ok := ParseStamp(in, true); ok {
			t.Errorf("Expected %q to be rejected (12h format)", in)
		}
	}
}

func TestParseStampInvalid(t *testing.T) {
	cases := []string{
		"",
		"not a date",
		"32/01/2025 10:00", // no 32nd day
		"29/02/2025 10:00", // 2025 is not a leap year
		"05/13/2025 10:00", // month 13 under day-first
		"05/06/2025 24:00", // hour out of range
		"05/06/2025 10:61",
		"05/06/12345 10:00", // 5-digit year
	}
	for _, in := range cases {
		if got, ok := ParseStamp(in, true); ok {
			t.Errorf("Expected %q to fail, got %v", in, got)
		}
	}
}

func TestParseStampLeapDay(t *testing.T) {
	if _, ok := ParseStamp("29/02/2024 00:00", true); !ok {
		t.Error("Expected 29/02/2024 to parse (leap year)")
	}
}
