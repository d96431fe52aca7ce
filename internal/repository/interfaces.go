package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
)

// ErrNotFound is returned by Get lookups when no row matches.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	GetByName(ctx context.Context, projectID, name string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
}

type IssueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error)
	// ListOpenByMilestone returns the batch snapshot the estimator runs on:
	// every open issue of the milestone with its relations attached in both
	// directions.
	ListOpenByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error)
	Update(ctx context.Context, i *domain.Issue) error
	// UpdateSchedule writes only the estimator-owned date fields.
	UpdateSchedule(ctx context.Context, id string, start, due time.Time) error
	Close(ctx context.Context, id string) error
}

type RelationRepo interface {
	Create(ctx context.Context, r *domain.Relation) error
	Delete(ctx context.Context, fromIssueID, toIssueID string) error
	ListForIssue(ctx context.Context, issueID string) ([]domain.Relation, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePattern(ctx context.Context, id string, weekdayHours [7]float64) error
}

// AvailabilityRepo persists the three raw inputs availability is derived
// from: committed schedule entries, explicit day closures, and holidays.
type AvailabilityRepo interface {
	ReplaceScheduleEntry(ctx context.Context, e *domain.ScheduleEntry) error
	ListScheduleEntries(ctx context.Context, from, to time.Time, excludeProjectID string) ([]*domain.ScheduleEntry, error)
	ListScheduleEntriesForUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.ScheduleEntry, error)
	// DeleteScheduleEntriesFrom removes a project's committed entries on or
	// after a date, so a re-committed estimate replaces its own prior claim.
	DeleteScheduleEntriesFrom(ctx context.Context, projectID string, from time.Time) error

	CreateClosedEntry(ctx context.Context, e *domain.ClosedEntry) error
	DeleteClosedEntry(ctx context.Context, userID string, date time.Time) error
	ListClosedEntries(ctx context.Context, from, to time.Time) ([]*domain.ClosedEntry, error)

	CreateHoliday(ctx context.Context, h *domain.Holiday) error
	ListHolidays(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)
}
