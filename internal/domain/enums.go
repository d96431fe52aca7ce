package domain

type IssueStatus string

const (
	IssueOpen   IssueStatus = "open"
	IssueClosed IssueStatus = "closed"
)

type MilestoneStatus string

const (
	MilestoneOpen   MilestoneStatus = "open"
	MilestoneClosed MilestoneStatus = "closed"
)

// RelationKind tags a directed relation between two issues. Only the
// ordering kinds (blocks, precedes) constrain scheduling; the rest are
// informational and ignored by the estimator.
type RelationKind string

const (
	RelationBlocks     RelationKind = "blocks"
	RelationPrecedes   RelationKind = "precedes"
	RelationRelates    RelationKind = "relates"
	RelationDuplicates RelationKind = "duplicates"
	RelationCopiedTo   RelationKind = "copied_to"
)

// ValidRelationKinds is the canonical set of accepted relation kind strings.
var ValidRelationKinds = map[string]bool{
	"blocks": true, "precedes": true, "relates": true,
	"duplicates": true, "copied_to": true,
}

// IssuePriority is an ordinal business priority; higher schedules earlier
// among unconstrained issues.
type IssuePriority int

const (
	PriorityLow       IssuePriority = 1
	PriorityNormal    IssuePriority = 2
	PriorityHigh      IssuePriority = 3
	PriorityUrgent    IssuePriority = 4
	PriorityImmediate IssuePriority = 5
)
