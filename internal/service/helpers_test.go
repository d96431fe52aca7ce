package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/stretchr/testify/require"
)

// harness wires every service over one in-memory database, the way main
// assembles them for the CLI.
type harness struct {
	db           *sql.DB
	projects     ProjectService
	milestones   MilestoneService
	issues       IssueService
	users        UserService
	availability AvailabilityService
	estimates    EstimateService

	issueRepo repository.IssueRepo
	availRepo repository.AvailabilityRepo
	msRepo    repository.MilestoneRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)
	relationRepo := repository.NewSQLiteRelationRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	availRepo := repository.NewSQLiteAvailabilityRepo(database)

	availability := NewAvailabilityService(availRepo, userRepo, projectRepo)

	return &harness{
		db:           database,
		projects:     NewProjectService(projectRepo),
		milestones:   NewMilestoneService(milestoneRepo, projectRepo, issueRepo),
		issues:       NewIssueService(issueRepo, relationRepo, projectRepo, userRepo),
		users:        NewUserService(userRepo),
		availability: availability,
		estimates:    NewEstimateService(projectRepo, milestoneRepo, issueRepo, userRepo, availability, uow),
		issueRepo:    issueRepo,
		availRepo:    availRepo,
		msRepo:       milestoneRepo,
	}
}

// seedBatch creates a project, a milestone and one full-time user, the
// minimum most estimate scenarios start from.
func (h *harness) seedBatch(t *testing.T, ctx context.Context) (*domain.Project, *domain.Milestone, *domain.User) {
	t.Helper()
	proj := testutil.NewTestProject("Estimating Project")
	require.NoError(t, h.projects.Create(ctx, proj))
	ms := testutil.NewTestMilestone(proj.ID, "Release 1")
	require.NoError(t, h.milestones.Create(ctx, ms))
	user := testutil.NewTestUser("Worker", testutil.WithWeekdayHours([7]float64{0, 8, 8, 8, 8, 8, 0}))
	require.NoError(t, h.users.Create(ctx, user))
	return proj, ms, user
}

func (h *harness) addIssue(t *testing.T, ctx context.Context, proj *domain.Project, ms *domain.Milestone, subject string, opts ...testutil.IssueOption) *domain.Issue {
	t.Helper()
	opts = append([]testutil.IssueOption{testutil.WithMilestone(ms.ID)}, opts...)
	issue := testutil.NewTestIssue(proj.ID, subject, opts...)
	require.NoError(t, h.issues.Create(ctx, issue))
	return issue
}

// estimateNow is a Tuesday so a Mon-Fri pattern has hours the very next day.
var estimateNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
