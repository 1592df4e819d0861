package scoring

import (
	"math"
	"time"
)

// dateLayouts are tried in order when parsing entity date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a task/lead date string. The zero time and false
// are returned when the string matches no supported layout.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntil returns the number of days from now until the given date,
// rounding partial days up. Past dates yield negative values.
func DaysUntil(now, date time.Time) int {
	diff := date.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// IsOverdue reports whether the date lies strictly before now.
func IsOverdue(now, date time.Time) bool {
	return date.Before(now)
}
