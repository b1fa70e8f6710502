package utils

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned when a date string is neither RFC3339 nor a
// bare calendar date.
var ErrInvalidDate = errors.New("invalid ISO8601 date")

// ParseDate accepts the two ISO8601 shapes clients send: a full RFC3339
// timestamp or a date-only value like 2025-01-01.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
