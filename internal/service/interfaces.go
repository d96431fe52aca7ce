package service

import (
	"context"
	"time"

	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/scheduler"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	GetByName(ctx context.Context, projectID, name string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Close(ctx context.Context, id string) error
}

type IssueService interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error)
	Update(ctx context.Context, i *domain.Issue) error
	Close(ctx context.Context, id string) error
	Relate(ctx context.Context, fromIssueID, toIssueID string, kind domain.RelationKind) error
	Unrelate(ctx context.Context, fromIssueID, toIssueID string) error
	ListRelations(ctx context.Context, issueID string) ([]domain.Relation, error)
}

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePattern(ctx context.Context, id string, weekdayHours [7]float64) error
}

// UserDay is one derived calendar day: the hours a user still has free
// after pattern, commitments, closures and holidays are netted out.
type UserDay struct {
	Date      time.Time
	Default   float64
	Committed float64
	Free      float64
	Closed    bool
	Holiday   string
}

type AvailabilityService interface {
	SetHours(ctx context.Context, userID, projectID string, date time.Time, hours float64) error
	CloseDay(ctx context.Context, userID string, date time.Time) error
	OpenDay(ctx context.Context, userID string, date time.Time) error
	AddHoliday(ctx context.Context, date time.Time, name string) error
	ListHolidays(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)
	// UserCalendar renders a user's derived availability over a date range.
	UserCalendar(ctx context.Context, userID string, from, to time.Time) ([]UserDay, error)
	// BuildLedger derives every user's free hours over a window, leaving
	// out commitments of the given project so a re-estimate can reclaim
	// hours it previously booked itself.
	BuildLedger(ctx context.Context, from, to time.Time, excludeProjectID string) (*scheduler.Ledger, error)
}

type EstimateService interface {
	Estimate(ctx context.Context, req contract.EstimateRequest) (*contract.EstimateResponse, error)
}

// ImportResult holds the outcome of a snapshot import.
type ImportResult struct {
	Project        *domain.Project
	UserCount      int
	MilestoneCount int
	IssueCount     int
	RelationCount  int
	EntryCount     int
}

type ImportService interface {
	ImportSnapshot(ctx context.Context, filePath string) (*ImportResult, error)
}
