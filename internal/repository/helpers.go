package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the storage format for calendar dates.
const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableStrToValue converts a *string to a value suitable for SQLite storage.
func nullableStrToValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// nullableFloatToValue converts a *float64 to a value suitable for SQLite storage.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// strPtr converts a sql.NullString to a *string, nil when NULL or empty.
func strPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// floatPtr converts a sql.NullFloat64 to a *float64, nil when NULL.
func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// formatWeekdayHours serializes a Sunday-first weekly pattern into its
// comma-joined column form, e.g. "0,8,8,8,8,6,0".
func formatWeekdayHours(hours [7]float64) string {
	parts := make([]string, 7)
	for i, h := range hours {
		parts[i] = strconv.FormatFloat(h, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// parseWeekdayHours is the inverse of formatWeekdayHours.
func parseWeekdayHours(s string) ([7]float64, error) {
	var hours [7]float64
	parts := strings.Split(s, ",")
	if len(parts) != 7 {
		return hours, fmt.Errorf("weekday hours %q: want 7 values, got %d", s, len(parts))
	}
	for i, p := range parts {
		h, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return hours, fmt.Errorf("weekday hours %q: %w", s, err)
		}
		hours[i] = h
	}
	return hours, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
