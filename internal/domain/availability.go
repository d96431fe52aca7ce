package domain

import "time"

// ScheduleEntry records hours committed by one user to one project on one
// day. Rows are written by manual logging and by estimate commits, and are
// subtracted from the weekly default when deriving availability.
type ScheduleEntry struct {
	ID        string
	UserID    string
	ProjectID string
	Date      time.Time
	Hours     float64
}

// ClosedEntry marks a day a user is explicitly unavailable regardless of
// their weekly pattern.
type ClosedEntry struct {
	ID     string
	UserID string
	Date   time.Time
}

// Holiday is a zero-availability day for everyone.
type Holiday struct {
	ID   string
	Date time.Time
	Name string
}

// Day truncates t to midnight UTC. Calendar math throughout the module
// operates on these normalized values so dates compare and hash reliably.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
