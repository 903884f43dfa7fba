// Package format renders stored timestamps and durations into the fixed,
// locale-stable strings the analysis views show.
package format

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDuration  = errors.New("invalid duration")
)

// timestampLayout is the only rendering the views use: fixed-width, UTC,
// lexicographically sortable.
const timestampLayout = "2006-01-02 15:04:05"

// acceptedLayouts are the timestamp shapes seen in stored and fetched data.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTime renders an already-typed time as `YYYY-MM-DD HH:MM:SS` in UTC.
func NormalizeTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses value against the accepted layouts.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// NormalizeTimestamp parses value and renders it as `YYYY-MM-DD HH:MM:SS`
// in UTC. Unparsable input is an error, never an "Invalid Date" string.
func NormalizeTimestamp(value string) (string, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return "", err
	}
	return NormalizeTime(t), nil
}

// FormatDuration renders a second count as `HH:MM:SS` with two-digit
// zero-padded fields. Hours are not wrapped at 24.
func FormatDuration(totalSeconds int) (string, error) {
	if totalSeconds < 0 {
		return "", fmt.Errorf("%w: %d seconds", ErrInvalidDuration, totalSeconds)
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds), nil
}
