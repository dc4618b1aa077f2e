// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CleanPhone strips the separators people commonly type into phone numbers.
func CleanPhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Allows + prefix followed by 7-15 digits
	return phonePattern.MatchString(CleanPhone(phone))
}

// ValidateClock checks a 24h HH:MM time of day.
func ValidateClock(value string) bool {
	return clockPattern.MatchString(value)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
