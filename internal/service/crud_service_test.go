package service

import (
	"context"
	"testing"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_ValidatesIdentifier(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	bad := testutil.NewTestProject("Bad", testutil.WithIdentifier("Has Spaces"))
	require.Error(t, h.projects.Create(ctx, bad))

	good := testutil.NewTestProject("Good", testutil.WithIdentifier("good-2"))
	require.NoError(t, h.projects.Create(ctx, good))

	found, err := h.projects.GetByIdentifier(ctx, "good-2")
	require.NoError(t, err)
	assert.Equal(t, good.ID, found.ID)
}

func TestProjectService_Create_AssignsIDWhenMissing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Auto ID")
	p.ID = ""
	require.NoError(t, h.projects.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
}

func TestIssueService_Create_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	proj, ms, user := h.seedBatch(t, ctx)

	noSubject := testutil.NewTestIssue(proj.ID, "")
	require.Error(t, h.issues.Create(ctx, noSubject))

	badPriority := testutil.NewTestIssue(proj.ID, "Bad priority", testutil.WithPriority(9))
	require.Error(t, h.issues.Create(ctx, badPriority))

	badRatio := testutil.NewTestIssue(proj.ID, "Bad ratio", testutil.WithDoneRatio(150))
	require.Error(t, h.issues.Create(ctx, badRatio))

	ghostAssignee := testutil.NewTestIssue(proj.ID, "Ghost", testutil.WithAssignee("nobody"))
	require.Error(t, h.issues.Create(ctx, ghostAssignee))

	ok := testutil.NewTestIssue(proj.ID, "Fine",
		testutil.WithMilestone(ms.ID), testutil.WithAssignee(user.ID))
	require.NoError(t, h.issues.Create(ctx, ok))
}

func TestIssueService_Relate_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	proj, ms, _ := h.seedBatch(t, ctx)

	a := h.addIssue(t, ctx, proj, ms, "A")
	b := h.addIssue(t, ctx, proj, ms, "B")

	require.Error(t, h.issues.Relate(ctx, a.ID, b.ID, "follows"), "unknown kind")
	require.Error(t, h.issues.Relate(ctx, a.ID, a.ID, domain.RelationBlocks), "self relation")
	require.Error(t, h.issues.Relate(ctx, a.ID, "missing", domain.RelationBlocks))

	require.NoError(t, h.issues.Relate(ctx, a.ID, b.ID, domain.RelationPrecedes))
	rels, err := h.issues.ListRelations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, domain.RelationPrecedes, rels[0].Kind)
}

func TestUserService_Create_RejectsBadPattern(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	negative := testutil.NewTestUser("Negative", testutil.WithWeekdayHours([7]float64{0, -1, 8, 8, 8, 8, 0}))
	require.Error(t, h.users.Create(ctx, negative))

	tooLong := testutil.NewTestUser("Marathon", testutil.WithFlatWeek(25))
	require.Error(t, h.users.Create(ctx, tooLong))
}

func TestMilestoneService_Close_RefusesWithOpenIssues(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	proj, ms, _ := h.seedBatch(t, ctx)

	issue := h.addIssue(t, ctx, proj, ms, "Still open")
	require.Error(t, h.milestones.Close(ctx, ms.ID))

	require.NoError(t, h.issues.Close(ctx, issue.ID))
	require.NoError(t, h.milestones.Close(ctx, ms.ID))

	stored, err := h.milestones.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneClosed, stored.Status)
}
