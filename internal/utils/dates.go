package utils

import (
	"fmt"
	"time"
)

// eventDateLayouts are the formats accepted for entity date fields, most
// specific first.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEventDate parses a date string as stored on reminders and health
// records. Date-only values parse to midnight UTC.
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// AgeInYears returns whole years elapsed since a YYYY-MM-DD birth date,
// as of the given moment. Unparsable input yields 0.
func AgeInYears(dateOfBirth string, now time.Time) int {
	birth, err := ParseEventDate(dateOfBirth)
	if err != nil {
		return 0
	}
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// BeginningOfDay truncates a time to local midnight.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
