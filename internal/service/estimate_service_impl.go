package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/scheduler"
	"github.com/google/uuid"
)

type estimateService struct {
	projects     repository.ProjectRepo
	milestones   repository.MilestoneRepo
	issues       repository.IssueRepo
	users        repository.UserRepo
	availability AvailabilityService
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewEstimateService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	issues repository.IssueRepo,
	users repository.UserRepo,
	availability AvailabilityService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) EstimateService {
	return &estimateService{
		projects:     projects,
		milestones:   milestones,
		issues:       issues,
		users:        users,
		availability: availability,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *estimateService) Estimate(ctx context.Context, req contract.EstimateRequest) (resp *contract.EstimateResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project":   req.ProjectID,
		"milestone": req.MilestoneID,
		"commit":    req.Commit,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "estimate",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	today := domain.Day(now)

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = scheduler.DefaultHorizonDays
	}

	project, milestone, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	batch, err := s.issues.ListOpenByMilestone(ctx, milestone.ID)
	if err != nil {
		return nil, fmt.Errorf("loading open issues: %w", err)
	}
	if len(batch) == 0 {
		return nil, &contract.EstimateError{
			Code:    contract.EstimateErrNoOpenIssues,
			Message: fmt.Sprintf("milestone %s has no open issues", milestone.Name),
		}
	}
	fields["issue_count"] = len(batch)

	external, maxExternalDue, err := s.resolveExternal(ctx, batch)
	if err != nil {
		return nil, err
	}

	// Each placement searches at most horizon days past its earliest
	// start, and a chain of predecessors can push each start to the
	// previous due date, so this window bounds the whole run.
	windowEnd := today
	if maxExternalDue != nil && maxExternalDue.After(windowEnd) {
		windowEnd = *maxExternalDue
	}
	windowEnd = windowEnd.AddDate(0, 0, horizon*len(batch)+1)

	ledger, err := s.availability.BuildLedger(ctx, today, windowEnd, project.ID)
	if err != nil {
		return nil, err
	}

	result, runErr := scheduler.Estimate(scheduler.Snapshot{
		Today:       today,
		HorizonDays: horizon,
		Issues:      batch,
		External:    external,
		Ledger:      ledger,
	})
	if runErr != nil {
		return nil, s.mapEstimateError(ctx, runErr)
	}

	resp, err = s.buildResponse(ctx, req, project, milestone, batch, ledger, result, now)
	if err != nil {
		return nil, err
	}

	if req.Commit {
		if err := s.commit(ctx, project.ID, milestone, result, today); err != nil {
			return nil, fmt.Errorf("committing estimate: %w", err)
		}
		resp.Committed = true
	}
	return resp, nil
}

func (s *estimateService) resolveTarget(ctx context.Context, req contract.EstimateRequest) (*domain.Project, *domain.Milestone, error) {
	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &contract.EstimateError{
				Code:    contract.EstimateErrNotFound,
				Message: fmt.Sprintf("project %s not found", req.ProjectID),
			}
		}
		return nil, nil, err
	}
	milestone, err := s.milestones.GetByID(ctx, req.MilestoneID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &contract.EstimateError{
				Code:    contract.EstimateErrNotFound,
				Message: fmt.Sprintf("milestone %s not found", req.MilestoneID),
			}
		}
		return nil, nil, err
	}
	if milestone.ProjectID != project.ID {
		return nil, nil, &contract.EstimateError{
			Code:    contract.EstimateErrNotFound,
			Message: fmt.Sprintf("milestone %s does not belong to project %s", milestone.Name, project.Identifier),
		}
	}
	return project, milestone, nil
}

// resolveExternal loads every ordering predecessor that lives outside the
// batch and reports the latest external due date seen.
func (s *estimateService) resolveExternal(ctx context.Context, batch []*domain.Issue) (map[string]scheduler.ExternalIssue, *time.Time, error) {
	inBatch := make(map[string]bool, len(batch))
	for _, i := range batch {
		inBatch[i.ID] = true
	}

	external := make(map[string]scheduler.ExternalIssue)
	var maxDue *time.Time
	for _, issue := range batch {
		for _, rel := range issue.Relations {
			if !scheduler.IsOrderingConstraint(rel.Kind) || rel.ToIssueID != issue.ID {
				continue
			}
			if inBatch[rel.FromIssueID] {
				continue
			}
			if _, seen := external[rel.FromIssueID]; seen {
				continue
			}
			pred, err := s.issues.GetByID(ctx, rel.FromIssueID)
			if err != nil {
				return nil, nil, fmt.Errorf("loading predecessor %s: %w", rel.FromIssueID, err)
			}
			ext := scheduler.ExternalIssue{
				Closed:  pred.Status == domain.IssueClosed,
				DueDate: pred.DueDate,
			}
			external[pred.ID] = ext
			if ext.DueDate != nil && (maxDue == nil || ext.DueDate.After(*maxDue)) {
				maxDue = ext.DueDate
			}
		}
	}
	return external, maxDue, nil
}

func (s *estimateService) buildResponse(
	ctx context.Context,
	req contract.EstimateRequest,
	project *domain.Project,
	milestone *domain.Milestone,
	batch []*domain.Issue,
	ledger *scheduler.Ledger,
	result *scheduler.Result,
	now time.Time,
) (*contract.EstimateResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Name
	}

	var warnings []string
	warned := make(map[string]bool)
	schedules := make([]contract.IssueSchedule, 0, len(batch))
	for _, issue := range batch {
		dates := result.Dates[issue.ID]
		assigneeID := ""
		if issue.AssigneeID != nil {
			assigneeID = *issue.AssigneeID
		}
		if assigneeID != "" && !ledger.HasEntries(assigneeID) && !warned[assigneeID] {
			warned[assigneeID] = true
			warnings = append(warnings, fmt.Sprintf(
				"%s has no availability calendar; their issues got day-long placeholders",
				domain.CoalesceStr(nameByID[assigneeID], assigneeID)))
		}
		schedules = append(schedules, contract.IssueSchedule{
			IssueID:      issue.ID,
			Subject:      issue.Subject,
			AssigneeID:   assigneeID,
			AssigneeName: nameByID[assigneeID],
			Priority:     int(issue.Priority),
			Hours:        issue.RemainingHours(),
			StartDate:    dates.Start,
			DueDate:      dates.Due,
		})
	}
	sort.Slice(schedules, func(i, j int) bool {
		if !schedules[i].StartDate.Equal(schedules[j].StartDate) {
			return schedules[i].StartDate.Before(schedules[j].StartDate)
		}
		if !schedules[i].DueDate.Equal(schedules[j].DueDate) {
			return schedules[i].DueDate.Before(schedules[j].DueDate)
		}
		return schedules[i].IssueID < schedules[j].IssueID
	})

	allocations := make([]contract.DayAllocation, 0, len(result.Consumed))
	for _, c := range result.Consumed {
		allocations = append(allocations, contract.DayAllocation{
			UserID: c.UserID,
			Date:   c.Date,
			Hours:  c.Hours,
		})
	}

	resp := &contract.EstimateResponse{
		GeneratedAt:    now,
		ProjectID:      project.ID,
		MilestoneID:    milestone.ID,
		MilestoneName:  milestone.Name,
		HorizonDays:    req.HorizonDays,
		CompletionDate: result.CompletionDate,
		Issues:         schedules,
		Allocations:    allocations,
		Warnings:       warnings,
	}
	if resp.HorizonDays <= 0 {
		resp.HorizonDays = scheduler.DefaultHorizonDays
	}
	if req.Explain {
		resp.Explanation = &contract.EstimateExplanation{
			Waves:         result.Waves,
			FloatingOrder: result.FloatingOrder,
		}
	}
	return resp, nil
}

// commit persists the run atomically: issue dates, the project's claimed
// hours from today forward, and the milestone completion date either all
// land or none do.
func (s *estimateService) commit(ctx context.Context, projectID string, milestone *domain.Milestone, result *scheduler.Result, today time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLiteIssueRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txAvail := repository.NewSQLiteAvailabilityRepo(tx)

		for id, dates := range result.Dates {
			if err := txIssues.UpdateSchedule(ctx, id, dates.Start, dates.Due); err != nil {
				return err
			}
		}

		if err := txAvail.DeleteScheduleEntriesFrom(ctx, projectID, today); err != nil {
			return err
		}
		for _, c := range result.Consumed {
			entry := &domain.ScheduleEntry{
				ID:        uuid.New().String(),
				UserID:    c.UserID,
				ProjectID: projectID,
				Date:      c.Date,
				Hours:     c.Hours,
			}
			if err := txAvail.ReplaceScheduleEntry(ctx, entry); err != nil {
				return err
			}
		}

		milestone.CompletionDate = &result.CompletionDate
		milestone.UpdatedAt = time.Now().UTC()
		return txMilestones.Update(ctx, milestone)
	})
}

func (s *estimateService) mapEstimateError(ctx context.Context, err error) error {
	var precondition *scheduler.PreconditionError
	if errors.As(err, &precondition) {
		details := make([]string, 0, len(precondition.Violations))
		for _, v := range precondition.Violations {
			details = append(details, fmt.Sprintf("%s: %s", v.IssueID, v.Reason))
		}
		return &contract.EstimateError{
			Code:    contract.EstimateErrPrecondition,
			Message: fmt.Sprintf("%d issues are not schedulable", len(precondition.Violations)),
			Details: details,
		}
	}
	var capacity *scheduler.CapacityError
	if errors.As(err, &capacity) {
		assignee := capacity.UserID
		if u, lookupErr := s.users.GetByID(ctx, capacity.UserID); lookupErr == nil {
			assignee = domain.CoalesceStr(u.Name, u.Login, u.ID)
		}
		subject := capacity.IssueID
		if i, lookupErr := s.issues.GetByID(ctx, capacity.IssueID); lookupErr == nil {
			subject = domain.CoalesceStr(i.Subject, i.ID)
		}
		return &contract.EstimateError{
			Code: contract.EstimateErrInsufficientCapacity,
			Message: fmt.Sprintf("%s has no capacity for %q within %d days of %s",
				assignee, subject, capacity.HorizonDays,
				capacity.SearchedFrom.Format("2006-01-02")),
			Details: []string{capacity.IssueID},
		}
	}
	var cycle *scheduler.CycleError
	if errors.As(err, &cycle) {
		return &contract.EstimateError{
			Code:    contract.EstimateErrCyclicPrecedence,
			Message: "ordering relations form a cycle",
			Details: cycle.IssueIDs,
		}
	}
	return &contract.EstimateError{
		Code:    contract.EstimateErrInternal,
		Message: err.Error(),
	}
}
