package scheduler

import "github.com/bradbeattie/schedules/internal/domain"

// Partition splits the batch's open issues into the three disjoint
// scheduling sets:
//
//   - surfaced: blocks at least one open batch issue, not itself blocked
//   - buried: blocked by at least one open batch issue
//   - floating: no ordering relation to any open batch issue
//
// Self-relations and relations whose other end is outside the batch do not
// participate; external predecessors are handled at placement time.
func Partition(issues map[string]*domain.Issue) (floating, surfaced, buried map[string]bool) {
	surfaced = make(map[string]bool)
	buried = make(map[string]bool)
	floating = make(map[string]bool)

	for id, issue := range issues {
		for _, rel := range issue.Relations {
			if !IsOrderingConstraint(rel.Kind) || rel.ToIssueID != id {
				continue
			}
			if rel.FromIssueID == id {
				continue
			}
			if _, inBatch := issues[rel.FromIssueID]; !inBatch {
				continue
			}
			buried[id] = true
			surfaced[rel.FromIssueID] = true
		}
	}

	// An issue that blocks something while itself blocked stays buried.
	for id := range buried {
		delete(surfaced, id)
	}

	for id := range issues {
		if !surfaced[id] && !buried[id] {
			floating[id] = true
		}
	}
	return floating, surfaced, buried
}

// blockedBy reports whether the issue still has an ordering predecessor in
// the remaining set.
func blockedBy(issue *domain.Issue, remaining map[string]bool) bool {
	for _, rel := range issue.Relations {
		if !IsOrderingConstraint(rel.Kind) || rel.ToIssueID != issue.ID {
			continue
		}
		if rel.FromIssueID != issue.ID && remaining[rel.FromIssueID] {
			return true
		}
	}
	return false
}

// blocksAny reports whether the issue is an ordering predecessor of any
// issue in the remaining set.
func blocksAny(issue *domain.Issue, remaining map[string]bool) bool {
	for _, rel := range issue.Relations {
		if !IsOrderingConstraint(rel.Kind) || rel.FromIssueID != issue.ID {
			continue
		}
		if rel.ToIssueID != issue.ID && remaining[rel.ToIssueID] {
			return true
		}
	}
	return false
}
