package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ledgerDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestLedger_AddAndPeek(t *testing.T) {
	l := NewLedger()
	l.Add("u1", ledgerDay, 4)

	assert.Equal(t, 4.0, l.Peek("u1", ledgerDay))
	assert.Equal(t, 0.0, l.Peek("u1", ledgerDay.AddDate(0, 0, 1)))
	assert.Equal(t, 0.0, l.Peek("other", ledgerDay))
}

func TestLedger_AddDropsNonPositiveHours(t *testing.T) {
	l := NewLedger()
	l.Add("u1", ledgerDay, 0)
	l.Add("u1", ledgerDay, -2)

	assert.False(t, l.HasEntries("u1"))
}

func TestLedger_AddNormalizesTimeOfDay(t *testing.T) {
	l := NewLedger()
	l.Add("u1", ledgerDay.Add(13*time.Hour), 4)

	assert.Equal(t, 4.0, l.Peek("u1", ledgerDay))
}

func TestLedger_ConsumePartial(t *testing.T) {
	l := NewLedger()
	l.Add("u1", ledgerDay, 4)

	taken := l.Consume("u1", ledgerDay, 1.5)

	assert.Equal(t, 1.5, taken)
	assert.Equal(t, 2.5, l.Peek("u1", ledgerDay))
}

func TestLedger_ConsumeClampedToFree(t *testing.T) {
	l := NewLedger()
	l.Add("u1", ledgerDay, 4)

	taken := l.Consume("u1", ledgerDay, 10)

	assert.Equal(t, 4.0, taken)
	assert.Equal(t, 0.0, l.Peek("u1", ledgerDay))
	assert.True(t, l.HasEntries("u1"), "drained day keeps its entry")
}

func TestLedger_ConsumeFromEmptyDay(t *testing.T) {
	l := NewLedger()

	assert.Equal(t, 0.0, l.Consume("u1", ledgerDay, 2))
	assert.False(t, l.HasEntries("u1"))
}

func TestLedger_ConsumedAggregatesAndSorts(t *testing.T) {
	l := NewLedger()
	l.Add("u2", ledgerDay, 8)
	l.Add("u1", ledgerDay.AddDate(0, 0, 1), 4)
	l.Add("u1", ledgerDay, 4)

	l.Consume("u2", ledgerDay, 3)
	l.Consume("u1", ledgerDay.AddDate(0, 0, 1), 2)
	l.Consume("u1", ledgerDay, 1)
	l.Consume("u1", ledgerDay, 1)

	got := l.Consumed()

	assert.Equal(t, []Consumption{
		{UserID: "u1", Date: ledgerDay, Hours: 2},
		{UserID: "u1", Date: ledgerDay.AddDate(0, 0, 1), Hours: 2},
		{UserID: "u2", Date: ledgerDay, Hours: 3},
	}, got)
}

func TestLedger_EnsureUserMarksCalendarWithoutHours(t *testing.T) {
	l := NewLedger()
	l.EnsureUser("u1")

	assert.True(t, l.HasEntries("u1"), "a fully booked calendar is still a calendar")
	assert.Equal(t, 0.0, l.Peek("u1", ledgerDay))
}
