// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBR        = "02/01/2006"
	DateLayoutBRDashed  = "02-01-2006"
	DateLayoutBRCompact = "02012006"
	DateLayoutBRShort   = "02/01"
)

// CommonFormats is the list of statement date formats to try when parsing.
// Brazilian exports write day first.
var CommonFormats = []string{
	DateLayoutBR,
	DateLayoutBRDashed,
	DateLayoutISO,
	DateLayoutBRCompact,
}

// ParseDate attempts to parse a date string using the common statement formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToISODateString parses a statement date string and returns it as ISO
// YYYY-MM-DD. Returns an error when the string matches none of the common
// formats.
func ToISODateString(dateStr string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// CleanDateString removes unwanted characters and normalizes a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// DaysBetween returns the absolute difference between two dates in whole days.
// Both values are truncated to midnight before comparing so partial-day
// drift never changes the bucket.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// MinMaxISO folds an ISO date into a running (min, max) pair. Empty bounds are
// replaced by the incoming date. ISO dates compare correctly as strings.
func MinMaxISO(min, max, date string) (string, string) {
	if date == "" {
		return min, max
	}
	if min == "" || date < min {
		min = date
	}
	if max == "" || date > max {
		max = date
	}
	return min, max
}
