package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15551234567", "+44 7700 900123", "(555) 123-4567", "447700900123"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}
	invalid := []string{"", "+0123", "abc", "+1555123456789012"}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
	assert.Equal(t, "+447700900123", CleanPhone(" +44 7700-900123 "))
}

func TestValidateClock(t *testing.T) {
	assert.True(t, ValidateClock("00:00"))
	assert.True(t, ValidateClock("23:59"))
	assert.False(t, ValidateClock("24:00"))
	assert.False(t, ValidateClock("9:30"))
	assert.False(t, ValidateClock("10:60"))
}

func TestParseDateAndDayRange(t *testing.T) {
	day, err := ParseDate(" 2026-03-14 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("14/03/2026")
	assert.Error(t, err)

	start, end := DayRange(time.Date(2026, 3, 14, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, day, start)
	assert.Equal(t, day.AddDate(0, 0, 1), end)
}
