package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateService_CommitFailure_RollsBackEverything(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	proj, ms, user := h.seedBatch(t, ctx)

	issue := h.addIssue(t, ctx, proj, ms, "Doomed",
		testutil.WithEstimatedHours(12), testutil.WithAssignee(user.ID))

	// Fail the last write of the commit, the milestone update: one issue
	// date update, one sweep delete, then delete+insert per claimed day.
	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: h.db, FailOn: 7, Err: boom}

	projectRepo := repository.NewSQLiteProjectRepo(h.db)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(h.db)
	issueRepo := repository.NewSQLiteIssueRepo(h.db)
	userRepo := repository.NewSQLiteUserRepo(h.db)
	estimates := NewEstimateService(projectRepo, milestoneRepo, issueRepo, userRepo, h.availability, failing)

	req := estimateReq(proj, ms)
	req.Commit = true
	_, err := h.estimates.Estimate(ctx, estimateReq(proj, ms)) // preview sanity check
	require.NoError(t, err)
	_, err = estimates.Estimate(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// Nothing landed.
	stored, err := h.issueRepo.GetByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.StartDate)
	assert.Nil(t, stored.DueDate)

	entries, err := h.availRepo.ListScheduleEntriesForUser(ctx, user.ID, day(2026, 9, 1), day(2026, 9, 30))
	require.NoError(t, err)
	assert.Empty(t, entries)

	storedMs, err := h.msRepo.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	assert.Nil(t, storedMs.CompletionDate)
}
