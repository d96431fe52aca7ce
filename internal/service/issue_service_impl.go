package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/google/uuid"
)

type issueService struct {
	issues    repository.IssueRepo
	relations repository.RelationRepo
	projects  repository.ProjectRepo
	users     repository.UserRepo
}

func NewIssueService(
	issues repository.IssueRepo,
	relations repository.RelationRepo,
	projects repository.ProjectRepo,
	users repository.UserRepo,
) IssueService {
	return &issueService{issues: issues, relations: relations, projects: projects, users: users}
}

func validateIssue(i *domain.Issue) error {
	if i.Subject == "" {
		return fmt.Errorf("issue subject is required")
	}
	if i.Priority < domain.PriorityLow || i.Priority > domain.PriorityImmediate {
		return fmt.Errorf("issue priority %d is out of range", i.Priority)
	}
	if i.DoneRatio < 0 || i.DoneRatio > 100 {
		return fmt.Errorf("issue done ratio %d is out of range", i.DoneRatio)
	}
	if i.EstimatedHours != nil && *i.EstimatedHours < 0 {
		return fmt.Errorf("issue estimate must not be negative")
	}
	return nil
}

func (s *issueService) Create(ctx context.Context, i *domain.Issue) error {
	if err := validateIssue(i); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, i.ProjectID); err != nil {
		return fmt.Errorf("issue project: %w", err)
	}
	if i.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *i.AssigneeID); err != nil {
			return fmt.Errorf("issue assignee: %w", err)
		}
	}
	now := time.Now().UTC()
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = domain.IssueOpen
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
		i.UpdatedAt = now
	}
	return s.issues.Create(ctx, i)
}

func (s *issueService) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	return s.issues.GetByID(ctx, id)
}

func (s *issueService) ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error) {
	return s.issues.ListByMilestone(ctx, milestoneID)
}

func (s *issueService) Update(ctx context.Context, i *domain.Issue) error {
	if err := validateIssue(i); err != nil {
		return err
	}
	if i.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *i.AssigneeID); err != nil {
			return fmt.Errorf("issue assignee: %w", err)
		}
	}
	return s.issues.Update(ctx, i)
}

func (s *issueService) Close(ctx context.Context, id string) error {
	if _, err := s.issues.GetByID(ctx, id); err != nil {
		return err
	}
	return s.issues.Close(ctx, id)
}

func (s *issueService) Relate(ctx context.Context, fromIssueID, toIssueID string, kind domain.RelationKind) error {
	if !domain.ValidRelationKinds[string(kind)] {
		return fmt.Errorf("unknown relation kind %q", kind)
	}
	if fromIssueID == toIssueID {
		return fmt.Errorf("an issue cannot relate to itself")
	}
	if _, err := s.issues.GetByID(ctx, fromIssueID); err != nil {
		return fmt.Errorf("relation source: %w", err)
	}
	if _, err := s.issues.GetByID(ctx, toIssueID); err != nil {
		return fmt.Errorf("relation target: %w", err)
	}
	return s.relations.Create(ctx, &domain.Relation{
		FromIssueID: fromIssueID,
		ToIssueID:   toIssueID,
		Kind:        kind,
	})
}

func (s *issueService) Unrelate(ctx context.Context, fromIssueID, toIssueID string) error {
	return s.relations.Delete(ctx, fromIssueID, toIssueID)
}

func (s *issueService) ListRelations(ctx context.Context, issueID string) ([]domain.Relation, error) {
	return s.relations.ListForIssue(ctx, issueID)
}
