package scheduler

import (
	"sort"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
)

// Ledger is the per-user availability calendar for one estimate run. It is
// built once before scheduling starts and only ever consumed afterwards;
// all mutation goes through Consume so the run's hour accounting stays in
// one place.
type Ledger struct {
	remaining map[string]map[time.Time]float64
	consumed  map[string]map[time.Time]float64
}

func NewLedger() *Ledger {
	return &Ledger{
		remaining: make(map[string]map[time.Time]float64),
		consumed:  make(map[string]map[time.Time]float64),
	}
}

// Add records free hours for a user on a day while the ledger is being
// built. Non-positive hours are dropped so the calendar only carries days
// with real capacity.
func (l *Ledger) Add(userID string, date time.Time, hours float64) {
	if hours <= 0 {
		return
	}
	day := domain.Day(date)
	if l.remaining[userID] == nil {
		l.remaining[userID] = make(map[time.Time]float64)
	}
	l.remaining[userID][day] += hours
}

// Peek returns the hours still free for a user on a day.
func (l *Ledger) Peek(userID string, date time.Time) float64 {
	return l.remaining[userID][domain.Day(date)]
}

// Consume takes up to amount hours from a user's day and returns what was
// actually taken. Fully consumed days stay in the calendar at zero hours;
// a user who once had entries is still distinguishable from one who never
// had any.
func (l *Ledger) Consume(userID string, date time.Time, amount float64) float64 {
	day := domain.Day(date)
	free := l.remaining[userID][day]
	if free <= 0 || amount <= 0 {
		return 0
	}
	taken := amount
	if taken > free {
		taken = free
	}
	l.remaining[userID][day] = free - taken
	if l.consumed[userID] == nil {
		l.consumed[userID] = make(map[time.Time]float64)
	}
	l.consumed[userID][day] += taken
	return taken
}

// EnsureUser marks a user as having a calendar even when every day of it
// is already booked. Without the mark such a user would be mistaken for
// one with no calendar at all and skip the capacity walk.
func (l *Ledger) EnsureUser(userID string) {
	if l.remaining[userID] == nil {
		l.remaining[userID] = make(map[time.Time]float64)
	}
}

// HasEntries reports whether the user has a calendar at all, booked or
// not. Users without one take the degenerate placement path instead of a
// capacity walk.
func (l *Ledger) HasEntries(userID string) bool {
	return l.remaining[userID] != nil
}

// Consumption is one user/day total taken during the run.
type Consumption struct {
	UserID string
	Date   time.Time
	Hours  float64
}

// Consumed returns every consumption of the run, ordered by user then date,
// for the caller to persist as committed schedule records.
func (l *Ledger) Consumed() []Consumption {
	var out []Consumption
	for userID, days := range l.consumed {
		for day, hours := range days {
			out = append(out, Consumption{UserID: userID, Date: day, Hours: hours})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
