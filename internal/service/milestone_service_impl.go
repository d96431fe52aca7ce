package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	projects   repository.ProjectRepo
	issues     repository.IssueRepo
}

func NewMilestoneService(milestones repository.MilestoneRepo, projects repository.ProjectRepo, issues repository.IssueRepo) MilestoneService {
	return &milestoneService{milestones: milestones, projects: projects, issues: issues}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	if m.Name == "" {
		return fmt.Errorf("milestone name is required")
	}
	if _, err := s.projects.GetByID(ctx, m.ProjectID); err != nil {
		return fmt.Errorf("milestone project: %w", err)
	}
	now := time.Now().UTC()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = domain.MilestoneOpen
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
		m.UpdatedAt = now
	}
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) GetByName(ctx context.Context, projectID, name string) (*domain.Milestone, error) {
	return s.milestones.GetByName(ctx, projectID, name)
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}

// Close refuses while any issue of the milestone is still open; the
// milestone's completion date is whatever the last estimate wrote.
func (s *milestoneService) Close(ctx context.Context, id string) error {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	open, err := s.issues.ListOpenByMilestone(ctx, id)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return fmt.Errorf("milestone %s has %d open issues", m.Name, len(open))
	}
	m.Status = domain.MilestoneClosed
	m.UpdatedAt = time.Now().UTC()
	return s.milestones.Update(ctx, m)
}
