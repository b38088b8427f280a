// Package dates parses the loosely formatted date strings that appear in
// resume work histories and converts intervals into fractional years.
package dates

import (
	"math"
	"strings"
	"time"
)

// layouts are tried in order; the first successful parse wins. Numeric
// layouts use the non-padded forms so "3/2020" and "03/2020" both parse.
var layouts = []string{
	"1/2006",       // MM/YYYY
	"January 2006", // Month YYYY
	"Jan 2006",     // Mon YYYY
	"2006",         // YYYY
	"1/2/2006",     // MM/DD/YYYY
	"January 2, 2006",
	"Jan 2, 2006",
}

// Parse converts a resume date string into a point in time. "present",
// "current" and "now" (any case) map to today. Strings matching none of the
// known formats yield nil; callers treat that as missing data, not an error.
func Parse(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "present", "current", "now":
		now := time.Now()
		return &now
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// YearsBetween returns the span between two dates in fractional years: the
// whole-day count divided by an average year of 365.25 days.
func YearsBetween(start, end time.Time) float64 {
	days := math.Trunc(end.Sub(start).Hours() / 24)
	return days / 365.25
}
