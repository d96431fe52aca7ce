package domain

import "time"

type Issue struct {
	ID          string
	ProjectID   string
	MilestoneID *string
	Subject     string
	Status      IssueStatus
	Priority    IssuePriority

	// Effort
	EstimatedHours *float64 // nil means not estimable
	DoneRatio      int      // 0..100

	AssigneeID *string

	// Start and due are owned by the estimator; unset until a schedule
	// run has been committed.
	StartDate *time.Time
	DueDate   *time.Time

	// Relations attached by the snapshot query, both directions.
	Relations []Relation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingHours returns the effort still to place on the calendar, scaled
// down by the completion fraction. Zero when no estimate is present.
func (i *Issue) RemainingHours() float64 {
	if i.EstimatedHours == nil {
		return 0
	}
	done := i.DoneRatio
	if done < 0 {
		done = 0
	}
	if done > 100 {
		done = 100
	}
	return *i.EstimatedHours * float64(100-done) / 100
}

// Relation is a directed pair of issues plus a kind tag. From must finish
// before To starts when the kind is an ordering kind.
type Relation struct {
	FromIssueID string
	ToIssueID   string
	Kind        RelationKind
}
