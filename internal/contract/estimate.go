package contract

import (
	"time"
)

// EstimateRequest asks for a capacity-aware schedule of every open issue in
// one milestone. By default the result is a preview; set Commit to persist
// issue dates and claim schedule-entry hours.
type EstimateRequest struct {
	ProjectID   string
	MilestoneID string
	Now         *time.Time
	HorizonDays int
	Commit      bool
	Explain     bool
}

func NewEstimateRequest(projectID, milestoneID string) EstimateRequest {
	return EstimateRequest{
		ProjectID:   projectID,
		MilestoneID: milestoneID,
		HorizonDays: 180,
		Explain:     true,
	}
}

// IssueSchedule is one issue's computed date window.
type IssueSchedule struct {
	IssueID      string
	Subject      string
	AssigneeID   string
	AssigneeName string
	Priority     int
	Hours        float64
	StartDate    time.Time
	DueDate      time.Time
}

// DayAllocation is one day of one user's availability claimed by the
// estimate.
type DayAllocation struct {
	UserID string
	Date   time.Time
	Hours  float64
}

type EstimateResponse struct {
	GeneratedAt    time.Time
	ProjectID      string
	MilestoneID    string
	MilestoneName  string
	HorizonDays    int
	Committed      bool
	CompletionDate time.Time
	Issues         []IssueSchedule
	Allocations    []DayAllocation
	Warnings       []string
	Explanation    *EstimateExplanation
}

// EstimateExplanation carries the wave structure the dates came from, for
// callers that want to show why an issue landed where it did.
type EstimateExplanation struct {
	Waves         [][]string // issue IDs per scheduling wave, in placement order
	FloatingOrder []string   // unconstrained issues in the order they packed
}

type EstimateErrorCode string

const (
	EstimateErrNotFound             EstimateErrorCode = "NOT_FOUND"
	EstimateErrNoOpenIssues         EstimateErrorCode = "NO_OPEN_ISSUES"
	EstimateErrPrecondition         EstimateErrorCode = "PRECONDITION_FAILED"
	EstimateErrInsufficientCapacity EstimateErrorCode = "INSUFFICIENT_CAPACITY"
	EstimateErrCyclicPrecedence     EstimateErrorCode = "CYCLIC_PRECEDENCE"
	EstimateErrInternal             EstimateErrorCode = "INTERNAL_ERROR"
)

// EstimateError is the typed failure surface of the estimate operation.
// Details carries one line per underlying problem when the code aggregates
// several, e.g. every precondition violation in the batch.
type EstimateError struct {
	Code    EstimateErrorCode
	Message string
	Details []string
}

func (e *EstimateError) Error() string {
	return string(e.Code) + ": " + e.Message
}
