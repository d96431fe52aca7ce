package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
)

// DefaultHorizonDays bounds how far past an issue's earliest start the
// placement walk searches for capacity.
const DefaultHorizonDays = 180

// ExternalIssue is the resolved state of an ordering predecessor that lives
// outside the batch.
type ExternalIssue struct {
	Closed  bool
	DueDate *time.Time
}

// Snapshot is everything one estimate run operates on. The run owns the
// ledger and the issue set exclusively until it returns; nothing here is
// persisted by the scheduler itself.
type Snapshot struct {
	Today       time.Time
	HorizonDays int
	Issues      []*domain.Issue
	External    map[string]ExternalIssue
	Ledger      *Ledger
}

// IssueDates is one issue's computed schedule.
type IssueDates struct {
	Start time.Time
	Due   time.Time
}

// Result is a successful estimate: a schedule per issue, the batch
// completion date, and the hours taken from each user's calendar. Waves
// and FloatingOrder record the order placement actually happened in.
type Result struct {
	Dates          map[string]IssueDates
	CompletionDate time.Time
	Consumed       []Consumption
	Waves          [][]string
	FloatingOrder  []string
}

type run struct {
	today    time.Time
	horizon  int
	issues   map[string]*domain.Issue
	external map[string]ExternalIssue
	ledger   *Ledger
	dates    map[string]IssueDates
}

// Estimate schedules every open issue of the batch against the availability
// ledger and returns per-issue dates plus the batch completion date. It
// fails atomically: a *PreconditionError before any placement, or a
// *CapacityError / *CycleError mid-run, in which case no dates are usable.
func Estimate(snap Snapshot) (*Result, error) {
	if len(snap.Issues) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	r := &run{
		today:    domain.Day(snap.Today),
		horizon:  snap.HorizonDays,
		issues:   make(map[string]*domain.Issue, len(snap.Issues)),
		external: snap.External,
		ledger:   snap.Ledger,
		dates:    make(map[string]IssueDates, len(snap.Issues)),
	}
	if r.horizon <= 0 {
		r.horizon = DefaultHorizonDays
	}
	if r.ledger == nil {
		r.ledger = NewLedger()
	}
	for _, issue := range snap.Issues {
		r.issues[issue.ID] = issue
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	floating, surfaced, buried := Partition(r.issues)

	var waves [][]string
	layer := sortedByPriority(r.issues, surfaced)
	for len(layer) > 0 {
		waves = append(waves, layer)
		// The layer is about to be resolved; it no longer blocks anything.
		for _, id := range layer {
			delete(buried, id)
		}
		for _, id := range layer {
			if err := r.place(r.issues[id]); err != nil {
				return nil, err
			}
		}

		// Promote newly unblocked successors into the next layer, or let
		// them drift to floating when they block nothing still buried.
		next := make(map[string]bool)
		for _, id := range layer {
			issue := r.issues[id]
			for _, rel := range issue.Relations {
				if !IsOrderingConstraint(rel.Kind) || rel.FromIssueID != id {
					continue
				}
				target, inBatch := r.issues[rel.ToIssueID]
				if !inBatch || !buried[rel.ToIssueID] {
					continue
				}
				if blockedBy(target, buried) {
					continue
				}
				if blocksAny(target, buried) {
					next[target.ID] = true
				} else {
					delete(buried, target.ID)
					floating[target.ID] = true
				}
			}
		}

		if len(next) == 0 && len(buried) > 0 {
			return nil, &CycleError{IssueIDs: sortedIDs(buried)}
		}
		layer = sortedByPriority(r.issues, next)
	}
	if len(buried) > 0 {
		// No surfaced issues at all: the buried set can only be cyclic.
		return nil, &CycleError{IssueIDs: sortedIDs(buried)}
	}

	floatingOrder := sortedByPriority(r.issues, floating)
	for _, id := range floatingOrder {
		if err := r.place(r.issues[id]); err != nil {
			return nil, err
		}
	}

	var completion time.Time
	for _, d := range r.dates {
		if d.Due.After(completion) {
			completion = d.Due
		}
	}

	return &Result{
		Dates:          r.dates,
		CompletionDate: completion,
		Consumed:       r.ledger.Consumed(),
		Waves:          waves,
		FloatingOrder:  floatingOrder,
	}, nil
}

// validate rejects the whole batch before any hours are consumed,
// reporting every violation at once.
func (r *run) validate() error {
	var violations []Violation
	for _, id := range sortedIDs(allSet(r.issues)) {
		issue := r.issues[id]
		if issue.EstimatedHours == nil && issue.DoneRatio < 100 {
			violations = append(violations, Violation{IssueID: id, Reason: "missing effort estimate"})
		}
		if issue.AssigneeID == nil || *issue.AssigneeID == "" {
			violations = append(violations, Violation{IssueID: id, Reason: "missing assignee"})
		}
		for _, rel := range issue.Relations {
			if !IsOrderingConstraint(rel.Kind) || rel.ToIssueID != id || rel.FromIssueID == id {
				continue
			}
			if _, inBatch := r.issues[rel.FromIssueID]; inBatch {
				continue
			}
			ext, known := r.external[rel.FromIssueID]
			if known && !ext.Closed && ext.DueDate == nil {
				violations = append(violations, Violation{
					IssueID: id,
					Reason:  fmt.Sprintf("predecessor %s outside the batch is open with no due date", rel.FromIssueID),
				})
			}
		}
	}
	if len(violations) > 0 {
		return &PreconditionError{Violations: violations}
	}
	return nil
}

// sortedByPriority orders a set of issue IDs by descending priority, ties
// broken by ID, so repeated runs over the same snapshot place hours
// identically.
func sortedByPriority(issues map[string]*domain.Issue, set map[string]bool) []string {
	ids := sortedIDs(set)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := issues[ids[i]], issues[ids[j]]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	})
	return ids
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func allSet(issues map[string]*domain.Issue) map[string]bool {
	set := make(map[string]bool, len(issues))
	for id := range issues {
		set[id] = true
	}
	return set
}
