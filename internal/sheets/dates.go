package sheets

import (
	"strconv"
	"strings"
	"time"
)

// genericLayouts are tried in order when a date is not day-month-year positional.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseSheetDate parses a sheet date cell.
//
// Cells are day-month-year with "/" or "-" separators; two digit years are
// taken as 2000s. Anything else falls through a set of common layouts and
// finally to now, so a malformed cell never drops a row.
func ParseSheetDate(value string, now time.Time) time.Time {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), "/", "-")

	if parts := strings.Split(normalized, "-"); len(parts) == 3 {
		day, dayErr := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, monthErr := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, yearErr := strconv.Atoi(strings.TrimSpace(parts[2]))
		if dayErr == nil && monthErr == nil && yearErr == nil {
			if year < 100 {
				year += 2000
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		}
	}

	for _, layout := range genericLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed
		}
	}

	return now
}
