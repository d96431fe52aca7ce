package formatter

import (
	"fmt"
	"math"
	"time"
)

// TruncID shortens a UUID to its first segment for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatDay renders a date as an ISO day with its weekday abbreviation.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02 Mon")
}

// FormatHours renders an hour quantity without trailing decimal noise.
func FormatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0fh", h)
	}
	return fmt.Sprintf("%.1fh", h)
}
