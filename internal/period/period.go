// Package period formats and parses the "YYYY-MM" month keys used by
// summaries.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMonth returns a month key like "2024-01".
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthOf returns the month key of t.
func MonthOf(t time.Time) string {
	return FormatMonth(t.Year(), int(t.Month()))
}

// ParseMonth parses "2024-01" into year and month.
func ParseMonth(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil || year < 0 {
		return 0, 0, fmt.Errorf("invalid year in month %q", key)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in month %q", key)
	}

	return year, month, nil
}

// Year returns the year key used to filter months, e.g. "2024".
func Year(year int) string {
	return fmt.Sprintf("%04d", year)
}
