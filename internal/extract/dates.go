package extract

import (
	"regexp"
	"strings"
	"time"
)

var (
	meridiemPattern = regexp.MustCompile(`(?i)\b(am|pm)\b`)
	stampPattern    = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
)

// ParseStamp interprets a textual timestamp under the given day/month
// convention. With dayFirst the first numeric group is the day of month,
// otherwise the month. Accepted shapes are dd/mm/yyyy or mm/dd/yyyy with
// "/" or "-" separators, a 2-4 digit year and an optional 24h time with
// optional seconds. Tokens carrying a 12h meridiem marker are rejected
// outright. Returns (zero, false) on any failure, never an error.
func ParseStamp(s string, dayFirst bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || meridiemPattern.MatchString(s) {
		return time.Time{}, false
	}

	m := stampPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	first, second := atoi(m[1]), atoi(m[2])
	year := atoi(m[3])
	if year < 100 {
		year += 2000
	}

	day, month := first, second
	if !dayFirst {
		day, month = second, first
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	hour, minute, sec := 0, 0, 0
	if m[4] != "" {
		hour, minute = atoi(m[4]), atoi(m[5])
		if m[6] != "" {
			sec = atoi(m[6])
		}
		if hour > 23 || minute > 59 || sec > 59 {
			return time.Time{}, false
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	// time.Date normalizes out-of-range components (31/02 becomes 03/03);
	// a changed day means the calendar date never existed.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
