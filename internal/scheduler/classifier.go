package scheduler

import "github.com/bradbeattie/schedules/internal/domain"

// IsOrderingConstraint reports whether a relation kind means the from-issue
// must finish before the to-issue starts. Everything else (relates,
// duplicates, copies) carries no scheduling meaning.
func IsOrderingConstraint(kind domain.RelationKind) bool {
	switch kind {
	case domain.RelationBlocks, domain.RelationPrecedes:
		return true
	default:
		return false
	}
}
