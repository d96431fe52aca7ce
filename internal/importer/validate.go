package importer

import (
	"fmt"
	"regexp"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	identifierPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	validStatuses     = map[string]bool{"": true, "open": true, "closed": true}
)

// ValidateSnapshot checks the snapshot for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSnapshot(snap *Snapshot) []error {
	var errs []error

	errs = append(errs, validateProject(&snap.Project)...)

	userRefs := make(map[string]bool)
	errs = append(errs, validateUsers(snap.Users, userRefs)...)

	milestoneRefs := make(map[string]bool)
	errs = append(errs, validateMilestones(snap.Milestones, milestoneRefs)...)

	issueRefs := make(map[string]bool)
	errs = append(errs, validateIssues(snap.Issues, milestoneRefs, userRefs, issueRefs)...)

	errs = append(errs, validateRelations(snap.Relations, issueRefs)...)
	errs = append(errs, validateCalendar(snap.Holidays, snap.ClosedDays, userRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if !identifierPattern.MatchString(p.Identifier) {
		errs = append(errs, fmt.Errorf("project.identifier %q must be lowercase letters, digits and dashes", p.Identifier))
	}
	return errs
}

func validateUsers(users []UserImport, refs map[string]bool) []error {
	var errs []error
	for i, u := range users {
		if u.Ref == "" {
			errs = append(errs, fmt.Errorf("users[%d].ref is required", i))
		} else if refs[u.Ref] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate ref %q", i, u.Ref))
		} else {
			refs[u.Ref] = true
		}
		if u.Login == "" {
			errs = append(errs, fmt.Errorf("users[%d].login is required", i))
		}
		if len(u.WeekdayHours) != 0 && len(u.WeekdayHours) != 7 {
			errs = append(errs, fmt.Errorf("users[%d].weekday_hours needs 7 values, got %d", i, len(u.WeekdayHours)))
		}
		for _, h := range u.WeekdayHours {
			if h < 0 || h > 24 {
				errs = append(errs, fmt.Errorf("users[%d].weekday_hours value %.1f out of range", i, h))
			}
		}
	}
	return errs
}

func validateMilestones(milestones []MilestoneImport, refs map[string]bool) []error {
	var errs []error
	for i, m := range milestones {
		if m.Ref == "" {
			errs = append(errs, fmt.Errorf("milestones[%d].ref is required", i))
		} else if refs[m.Ref] {
			errs = append(errs, fmt.Errorf("milestones[%d]: duplicate ref %q", i, m.Ref))
		} else {
			refs[m.Ref] = true
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("milestones[%d].name is required", i))
		}
	}
	return errs
}

func validateIssues(issues []IssueImport, milestoneRefs, userRefs, refs map[string]bool) []error {
	var errs []error
	for i, issue := range issues {
		if issue.Ref == "" {
			errs = append(errs, fmt.Errorf("issues[%d].ref is required", i))
		} else if refs[issue.Ref] {
			errs = append(errs, fmt.Errorf("issues[%d]: duplicate ref %q", i, issue.Ref))
		} else {
			refs[issue.Ref] = true
		}
		if issue.Subject == "" {
			errs = append(errs, fmt.Errorf("issues[%d].subject is required", i))
		}
		if issue.MilestoneRef != nil && !milestoneRefs[*issue.MilestoneRef] {
			errs = append(errs, fmt.Errorf("issues[%d].milestone_ref %q not found", i, *issue.MilestoneRef))
		}
		if issue.AssigneeRef != nil && !userRefs[*issue.AssigneeRef] {
			errs = append(errs, fmt.Errorf("issues[%d].assignee_ref %q not found", i, *issue.AssigneeRef))
		}
		if issue.EstimatedHours != nil && *issue.EstimatedHours < 0 {
			errs = append(errs, fmt.Errorf("issues[%d].estimated_hours must not be negative", i))
		}
		if issue.DoneRatio != nil && (*issue.DoneRatio < 0 || *issue.DoneRatio > 100) {
			errs = append(errs, fmt.Errorf("issues[%d].done_ratio %d out of range", i, *issue.DoneRatio))
		}
		if issue.Priority != nil && (*issue.Priority < int(domain.PriorityLow) || *issue.Priority > int(domain.PriorityImmediate)) {
			errs = append(errs, fmt.Errorf("issues[%d].priority %d out of range", i, *issue.Priority))
		}
		if !validStatuses[issue.Status] {
			errs = append(errs, fmt.Errorf("issues[%d].status: invalid value %q", i, issue.Status))
		}
		if issue.DueDate != nil {
			if _, err := time.Parse(dateLayout, *issue.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("issues[%d].due_date: invalid date %q (expected YYYY-MM-DD)", i, *issue.DueDate))
			}
		}
	}
	return errs
}

func validateRelations(relations []RelationImport, issueRefs map[string]bool) []error {
	var errs []error
	for i, r := range relations {
		if !issueRefs[r.FromRef] {
			errs = append(errs, fmt.Errorf("relations[%d].from_ref %q not found", i, r.FromRef))
		}
		if !issueRefs[r.ToRef] {
			errs = append(errs, fmt.Errorf("relations[%d].to_ref %q not found", i, r.ToRef))
		}
		if r.FromRef != "" && r.FromRef == r.ToRef {
			errs = append(errs, fmt.Errorf("relations[%d]: an issue cannot relate to itself", i))
		}
		if !domain.ValidRelationKinds[r.Kind] {
			errs = append(errs, fmt.Errorf("relations[%d].kind: invalid value %q", i, r.Kind))
		}
	}
	return errs
}

func validateCalendar(holidays []HolidayImport, closedDays []ClosedDayImport, userRefs map[string]bool) []error {
	var errs []error
	for i, h := range holidays {
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("holidays[%d].name is required", i))
		}
		if _, err := time.Parse(dateLayout, h.Date); err != nil {
			errs = append(errs, fmt.Errorf("holidays[%d].date: invalid date %q (expected YYYY-MM-DD)", i, h.Date))
		}
	}
	for i, c := range closedDays {
		if !userRefs[c.UserRef] {
			errs = append(errs, fmt.Errorf("closed_days[%d].user_ref %q not found", i, c.UserRef))
		}
		if _, err := time.Parse(dateLayout, c.Date); err != nil {
			errs = append(errs, fmt.Errorf("closed_days[%d].date: invalid date %q (expected YYYY-MM-DD)", i, c.Date))
		}
	}
	return errs
}
