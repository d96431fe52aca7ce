package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/google/uuid"
)

var testLoginCounter atomic.Int64

// Project fixtures

type ProjectOption func(*domain.Project)

func WithIdentifier(id string) ProjectOption {
	return func(p *domain.Project) {
		p.Identifier = id
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:         uuid.New().String(),
		Identifier: fmt.Sprintf("proj-%d", testLoginCounter.Add(1)),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Milestone fixtures

type MilestoneOption func(*domain.Milestone)

func WithMilestoneStatus(s domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = s
	}
}

func NewTestMilestone(projectID, name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Status:    domain.MilestoneOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// User fixtures

type UserOption func(*domain.User)

// WithWeekdayHours sets the weekly pattern, Sunday first.
func WithWeekdayHours(hours [7]float64) UserOption {
	return func(u *domain.User) {
		u.WeekdayHours = hours
	}
}

// WithFlatWeek gives the user the same hours all seven days.
func WithFlatWeek(hoursPerDay float64) UserOption {
	return func(u *domain.User) {
		for i := range u.WeekdayHours {
			u.WeekdayHours[i] = hoursPerDay
		}
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:        uuid.New().String(),
		Login:     fmt.Sprintf("user-%d", testLoginCounter.Add(1)),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Issue fixtures

type IssueOption func(*domain.Issue)

func WithEstimatedHours(h float64) IssueOption {
	return func(i *domain.Issue) {
		i.EstimatedHours = &h
	}
}

func WithNoEstimate() IssueOption {
	return func(i *domain.Issue) {
		i.EstimatedHours = nil
	}
}

func WithAssignee(userID string) IssueOption {
	return func(i *domain.Issue) {
		i.AssigneeID = &userID
	}
}

func WithMilestone(milestoneID string) IssueOption {
	return func(i *domain.Issue) {
		i.MilestoneID = &milestoneID
	}
}

func WithPriority(p domain.IssuePriority) IssueOption {
	return func(i *domain.Issue) {
		i.Priority = p
	}
}

func WithDoneRatio(pct int) IssueOption {
	return func(i *domain.Issue) {
		i.DoneRatio = pct
	}
}

func WithIssueStatus(s domain.IssueStatus) IssueOption {
	return func(i *domain.Issue) {
		i.Status = s
	}
}

func WithDueDate(d time.Time) IssueOption {
	return func(i *domain.Issue) {
		i.DueDate = &d
	}
}

func NewTestIssue(projectID, subject string, opts ...IssueOption) *domain.Issue {
	now := time.Now().UTC()
	est := 8.0
	i := &domain.Issue{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Subject:        subject,
		Status:         domain.IssueOpen,
		Priority:       domain.PriorityNormal,
		EstimatedHours: &est,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
