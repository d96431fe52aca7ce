package importer

import (
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/google/uuid"
)

// Converted is a snapshot translated into domain objects ready for
// persistence, in dependency order.
type Converted struct {
	Project    *domain.Project
	Users      []*domain.User
	Milestones []*domain.Milestone
	Issues     []*domain.Issue
	Relations  []*domain.Relation
	Holidays   []*domain.Holiday
	ClosedDays []*domain.ClosedEntry
}

// Convert transforms a validated snapshot into domain objects.
// Call ValidateSnapshot first; Convert assumes the snapshot is valid.
func Convert(snap *Snapshot) (*Converted, error) {
	now := time.Now().UTC()

	out := &Converted{
		Project: &domain.Project{
			ID:         uuid.New().String(),
			Identifier: snap.Project.Identifier,
			Name:       snap.Project.Name,
			CreatedAt:  now,
		},
	}

	userIDs := make(map[string]string)
	for _, u := range snap.Users {
		user := &domain.User{
			ID:        uuid.New().String(),
			Login:     u.Login,
			Name:      u.Name,
			CreatedAt: now,
		}
		copy(user.WeekdayHours[:], u.WeekdayHours)
		userIDs[u.Ref] = user.ID
		out.Users = append(out.Users, user)
	}

	milestoneIDs := make(map[string]string)
	for _, m := range snap.Milestones {
		milestone := &domain.Milestone{
			ID:        uuid.New().String(),
			ProjectID: out.Project.ID,
			Name:      m.Name,
			Status:    domain.MilestoneOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		milestoneIDs[m.Ref] = milestone.ID
		out.Milestones = append(out.Milestones, milestone)
	}

	issueIDs := make(map[string]string)
	for _, in := range snap.Issues {
		issue := &domain.Issue{
			ID:             uuid.New().String(),
			ProjectID:      out.Project.ID,
			Subject:        in.Subject,
			Status:         domain.IssueOpen,
			Priority:       domain.IssuePriority(domain.IntFromPtrWithDefault(int(domain.PriorityNormal), in.Priority)),
			EstimatedHours: in.EstimatedHours,
			DoneRatio:      domain.IntFromPtrWithDefault(0, in.DoneRatio),
			DueDate:        parseOptionalDate(in.DueDate),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if in.Status != "" {
			issue.Status = domain.IssueStatus(in.Status)
		}
		if in.MilestoneRef != nil {
			id := milestoneIDs[*in.MilestoneRef]
			issue.MilestoneID = &id
		}
		if in.AssigneeRef != nil {
			id := userIDs[*in.AssigneeRef]
			issue.AssigneeID = &id
		}
		issueIDs[in.Ref] = issue.ID
		out.Issues = append(out.Issues, issue)
	}

	for _, r := range snap.Relations {
		out.Relations = append(out.Relations, &domain.Relation{
			FromIssueID: issueIDs[r.FromRef],
			ToIssueID:   issueIDs[r.ToRef],
			Kind:        domain.RelationKind(r.Kind),
		})
	}

	for _, h := range snap.Holidays {
		date, err := time.Parse(dateLayout, h.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday date: %w", err)
		}
		out.Holidays = append(out.Holidays, &domain.Holiday{
			ID:   uuid.New().String(),
			Date: domain.Day(date),
			Name: h.Name,
		})
	}

	for _, c := range snap.ClosedDays {
		date, err := time.Parse(dateLayout, c.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing closed day date: %w", err)
		}
		out.ClosedDays = append(out.ClosedDays, &domain.ClosedEntry{
			ID:     uuid.New().String(),
			UserID: userIDs[c.UserRef],
			Date:   domain.Day(date),
		})
	}

	return out, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	t = domain.Day(t)
	return &t
}
