package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/service"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(database)
	msRepo := repository.NewSQLiteMilestoneRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)
	relRepo := repository.NewSQLiteRelationRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	availRepo := repository.NewSQLiteAvailabilityRepo(database)
	uow := testutil.NewTestUoW(database)

	availSvc := service.NewAvailabilityService(availRepo, userRepo, projRepo)

	return &App{
		Projects:     service.NewProjectService(projRepo),
		Milestones:   service.NewMilestoneService(msRepo, projRepo, issueRepo),
		Issues:       service.NewIssueService(issueRepo, relRepo, projRepo, userRepo),
		Users:        service.NewUserService(userRepo),
		Availability: availSvc,
		Estimates:    service.NewEstimateService(projRepo, msRepo, issueRepo, userRepo, availSvc, uow),
		Imports:      service.NewImportService(uow),
	}
}

// executeCmd runs a cobra command and captures cobra's own output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedProject(t *testing.T, app *App) *domain.Project {
	t.Helper()
	p := &domain.Project{Identifier: "acme", Name: "Acme Corp"}
	require.NoError(t, app.Projects.Create(context.Background(), p))
	return p
}

func TestResolveProjectID(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p := seedProject(t, app)

	id, err := resolveProjectID(ctx, app, "acme")
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	id, err = resolveProjectID(ctx, app, "ACME")
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	id, err = resolveProjectID(ctx, app, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	id, err = resolveProjectID(ctx, app, p.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	_, err = resolveProjectID(ctx, app, "ghost")
	assert.ErrorContains(t, err, "not found")

	_, err = resolveProjectID(ctx, app, "")
	assert.Error(t, err)
}

func TestResolveMilestoneID_ByNameAndPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p := seedProject(t, app)

	m := &domain.Milestone{ProjectID: p.ID, Name: "Release 1"}
	require.NoError(t, app.Milestones.Create(ctx, m))

	id, err := resolveMilestoneID(ctx, app, p.ID, "release 1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, id)

	id, err = resolveMilestoneID(ctx, app, p.ID, m.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, m.ID, id)

	_, err = resolveMilestoneID(ctx, app, p.ID, "Release 9")
	assert.ErrorContains(t, err, "not found")
}

func TestResolveUserID_ByLogin(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	u := &domain.User{Login: "alice", Name: "Alice"}
	require.NoError(t, app.Users.Create(ctx, u))

	id, err := resolveUserID(ctx, app, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = resolveUserID(ctx, app, "bob")
	assert.ErrorContains(t, err, "not found")
}

func TestDayValue(t *testing.T) {
	var d dayValue
	assert.Equal(t, "", d.String())

	require.NoError(t, d.Set("2026-09-01"))
	assert.Equal(t, "2026-09-01", d.String())
	assert.Equal(t, 2026, d.Time().Year())

	assert.ErrorContains(t, d.Set("Sept 1"), "YYYY-MM-DD")
}

func TestParsePattern(t *testing.T) {
	pattern, err := parsePattern("0,8,8,8,8,6.5,0")
	require.NoError(t, err)
	assert.Equal(t, [7]float64{0, 8, 8, 8, 8, 6.5, 0}, pattern)

	_, err = parsePattern("8,8,8")
	assert.ErrorContains(t, err, "7 comma-separated values")

	_, err = parsePattern("0,8,8,8,8,x,0")
	assert.ErrorContains(t, err, "not a number")
}

func TestProjectAddAndRemoveCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "Acme Corp", "--identifier", "acme")
	require.NoError(t, err)

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "acme", projects[0].Identifier)

	_, err = executeCmd(t, app, "project", "remove", "acme")
	require.NoError(t, err)

	projects, err = app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestIssueAddCmd_ResolvesReferences(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	p := seedProject(t, app)

	require.NoError(t, app.Users.Create(ctx, &domain.User{Login: "alice", Name: "Alice"}))
	m := &domain.Milestone{ProjectID: p.ID, Name: "Release 1"}
	require.NoError(t, app.Milestones.Create(ctx, m))

	_, err := executeCmd(t, app,
		"issue", "add",
		"--project", "acme",
		"--milestone", "Release 1",
		"--subject", "Build importer",
		"--assignee", "alice",
		"--hours", "12",
		"--priority", "4",
	)
	require.NoError(t, err)

	issues, err := app.Issues.ListByMilestone(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Build importer", issues[0].Subject)
	assert.Equal(t, domain.PriorityUrgent, issues[0].Priority)
	require.NotNil(t, issues[0].EstimatedHours)
	assert.Equal(t, 12.0, *issues[0].EstimatedHours)
	require.NotNil(t, issues[0].AssigneeID)
}

func TestEstimateCmd_UnknownMilestoneFails(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "estimate", "--project", "acme", "--milestone", "Release 1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not found")
}

func TestAvailSetCmd_RejectsBadDate(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedProject(t, app)
	require.NoError(t, app.Users.Create(ctx, &domain.User{Login: "alice", Name: "Alice"}))

	_, err := executeCmd(t, app,
		"avail", "set",
		"--user", "alice",
		"--project", "acme",
		"--date", "tomorrow",
		"--hours", "4",
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}
