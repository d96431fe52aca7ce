package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `
project:
  identifier: acme
  name: Acme
users:
  - ref: alice
    login: alice
    name: Alice
    weekday_hours: [0, 8, 8, 8, 8, 8, 0]
milestones:
  - ref: v1
    name: v1.0
issues:
  - ref: setup
    subject: Set up environment
    milestone_ref: v1
    assignee_ref: alice
    estimated_hours: 8
  - ref: deploy
    subject: Deploy
    milestone_ref: v1
    assignee_ref: alice
    estimated_hours: 4
relations:
  - from_ref: setup
    to_ref: deploy
    kind: blocks
holidays:
  - date: "2026-12-25"
    name: Christmas
`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportService_ImportSnapshot_PersistsEverything(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	imports := NewImportService(testutil.NewTestUoW(h.db))

	result, err := imports.ImportSnapshot(ctx, writeSnapshot(t, sampleSnapshot))
	require.NoError(t, err)
	assert.Equal(t, 1, result.UserCount)
	assert.Equal(t, 1, result.MilestoneCount)
	assert.Equal(t, 2, result.IssueCount)
	assert.Equal(t, 1, result.RelationCount)
	assert.Equal(t, 1, result.EntryCount)

	proj, err := h.projects.GetByIdentifier(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, result.Project.ID, proj.ID)

	ms, err := h.milestones.GetByName(ctx, proj.ID, "v1.0")
	require.NoError(t, err)
	issues, err := h.issues.ListByMilestone(ctx, ms.ID)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestImportService_ImportedSnapshot_IsEstimable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	imports := NewImportService(testutil.NewTestUoW(h.db))

	result, err := imports.ImportSnapshot(ctx, writeSnapshot(t, sampleSnapshot))
	require.NoError(t, err)

	ms, err := h.milestones.GetByName(ctx, result.Project.ID, "v1.0")
	require.NoError(t, err)

	req := contract.NewEstimateRequest(result.Project.ID, ms.ID)
	now := estimateNow
	req.Now = &now
	resp, err := h.estimates.Estimate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Issues, 2)
}

func TestImportService_ValidationFailure_ListsEveryProblem(t *testing.T) {
	h := newHarness(t)
	imports := NewImportService(testutil.NewTestUoW(h.db))

	bad := `
project:
  identifier: "Bad Identifier"
  name: ""
issues:
  - ref: a
    subject: ""
`
	_, err := imports.ImportSnapshot(context.Background(), writeSnapshot(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "project.name")
	assert.Contains(t, err.Error(), "subject")
}

func TestImportService_ObserverSeesOutcome(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := &recordingObserver{}
	imports := NewImportService(testutil.NewTestUoW(h.db), rec)

	_, err := imports.ImportSnapshot(ctx, writeSnapshot(t, sampleSnapshot))
	require.NoError(t, err)

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, "import", events[0].Name)
	assert.True(t, events[0].Success)
	assert.Equal(t, "acme", events[0].Fields["project"])
	assert.Equal(t, 2, events[0].Fields["issue_count"])

	_, err = imports.ImportSnapshot(ctx, writeSnapshot(t, "not: [valid"))
	require.Error(t, err)

	events = rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, "import", events[1].Name)
	assert.False(t, events[1].Success)
	assert.Error(t, events[1].Err)
}

func TestImportService_DuplicateIdentifier_RollsBack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	imports := NewImportService(testutil.NewTestUoW(h.db))

	_, err := imports.ImportSnapshot(ctx, writeSnapshot(t, sampleSnapshot))
	require.NoError(t, err)

	// Same identifier again: project insert fails, nothing else lands.
	_, err = imports.ImportSnapshot(ctx, writeSnapshot(t, sampleSnapshot))
	require.Error(t, err)

	users, err := h.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "the failed import left no second alice behind")
}
