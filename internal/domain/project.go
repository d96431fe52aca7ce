package domain

import "time"

type Project struct {
	ID         string
	Identifier string // short machine name, unique
	Name       string
	CreatedAt  time.Time
}

// Milestone groups the open issues estimated together as one batch. Its
// completion date is derived by the estimator as the latest issue due date.
type Milestone struct {
	ID             string
	ProjectID      string
	Name           string
	Status         MilestoneStatus
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
