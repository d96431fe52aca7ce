package scheduler

import (
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
)

// hoursEpsilon absorbs float drift when deciding an issue's effort is
// fully placed.
const hoursEpsilon = 1e-9

// place schedules a single issue: it computes the earliest possible start
// from today and the due dates of already-placed predecessors, then walks
// the assignee's calendar day by day consuming hours until the remaining
// effort is exhausted.
//
// The recorded start date is the first day hours were actually consumed;
// only the degenerate cases (nothing left to place, or an assignee with no
// calendar entries at all) fall back to the earliest possible start.
func (r *run) place(issue *domain.Issue) error {
	earliest := r.earliestStart(issue)
	assignee := *issue.AssigneeID

	remaining := issue.RemainingHours()
	if remaining <= hoursEpsilon || !r.ledger.HasEntries(assignee) {
		r.dates[issue.ID] = IssueDates{Start: earliest, Due: earliest.AddDate(0, 0, 1)}
		return nil
	}

	var first, last time.Time
	for offset := 1; offset <= r.horizon; offset++ {
		day := earliest.AddDate(0, 0, offset)
		free := r.ledger.Peek(assignee, day)
		if free <= 0 {
			continue
		}
		want := remaining
		if free < want {
			want = free
		}
		taken := r.ledger.Consume(assignee, day, want)
		if first.IsZero() {
			first = day
		}
		last = day
		remaining -= taken
		if remaining <= hoursEpsilon {
			remaining = 0
			break
		}
	}

	if remaining > 0 {
		return &CapacityError{
			UserID:       assignee,
			IssueID:      issue.ID,
			SearchedFrom: earliest,
			HorizonDays:  r.horizon,
		}
	}

	r.dates[issue.ID] = IssueDates{Start: first, Due: last}
	return nil
}

// earliestStart is the max of today, the due dates of in-batch ordering
// predecessors (already placed, since layers resolve predecessors first),
// and the due dates of predecessors outside the batch.
func (r *run) earliestStart(issue *domain.Issue) time.Time {
	earliest := r.today
	for _, rel := range issue.Relations {
		if !IsOrderingConstraint(rel.Kind) || rel.ToIssueID != issue.ID {
			continue
		}
		if rel.FromIssueID == issue.ID {
			continue
		}
		if placed, ok := r.dates[rel.FromIssueID]; ok {
			if placed.Due.After(earliest) {
				earliest = placed.Due
			}
			continue
		}
		if ext, ok := r.external[rel.FromIssueID]; ok && ext.DueDate != nil {
			if due := domain.Day(*ext.DueDate); due.After(earliest) {
				earliest = due
			}
		}
	}
	return earliest
}
