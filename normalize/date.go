package normalize

import (
	"strings"
	"time"
)

// DateLayouts are tried in order. Go's single-digit month/day elements
// accept both "7" and "07", so the padded layouts only matter for
// two-digit-only inputs.
var DateLayouts = []string{
	"1/2/06",
	"01/02/06",
	"1/2/2006",
	"01/02/2006",
	"1-2-06",
	"1-2-2006",
	"2006-01-02",
}

// ParseDate parses a legacy date cell. Two-digit years always land in the
// 2000s; four-digit years are kept as written. Time-of-day suffixes such as
// "7/23/2025 0:00:00" are ignored. ok is false for empty or unparsable input.
func ParseDate(raw string) (time.Time, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	value := fields[0]

	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") && t.Year() < 2000 {
			t = time.Date(2000+t.Year()%100, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, true
	}
	return time.Time{}, false
}
