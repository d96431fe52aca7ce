package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrPrecondition         = errors.New("estimate preconditions not met")
	ErrInsufficientCapacity = errors.New("insufficient scheduling capacity")
	ErrCyclicPrecedence     = errors.New("cyclic precedence")
)

// Violation names one issue-level precondition failure.
type Violation struct {
	IssueID string
	Reason  string
}

// PreconditionError reports every violation found before scheduling began.
type PreconditionError struct {
	Violations []Violation
}

func (e *PreconditionError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("issue %s: %s", v.IssueID, v.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrPrecondition.Error(), strings.Join(parts, "; "))
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// CapacityError reports a placement walk that exhausted its horizon before
// the issue's remaining effort could be placed.
type CapacityError struct {
	UserID       string
	IssueID      string
	SearchedFrom time.Time
	HorizonDays  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: user %s cannot absorb issue %s within %d days of %s",
		ErrInsufficientCapacity.Error(), e.UserID, e.IssueID, e.HorizonDays,
		e.SearchedFrom.Format("2006-01-02"))
}

func (e *CapacityError) Unwrap() error { return ErrInsufficientCapacity }

// CycleError reports the issues left stranded when a layering pass could
// not surface anything while blocked issues remained.
type CycleError struct {
	IssueIDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: involving issues %s",
		ErrCyclicPrecedence.Error(), strings.Join(e.IssueIDs, ", "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicPrecedence }
