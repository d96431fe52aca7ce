package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID resolves a project reference which can be:
//   - The project identifier (case-insensitive)
//   - A full UUID
//   - A UUID prefix
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.Identifier, input) {
			return p.ID, nil
		}
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveMilestoneID resolves a milestone reference within a project: the
// milestone name first, then a full UUID, then a UUID prefix.
func resolveMilestoneID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("milestone is required")
	}

	milestones, err := app.Milestones.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, m := range milestones {
		if strings.EqualFold(m.Name, input) {
			return m.ID, nil
		}
	}

	for _, m := range milestones {
		if m.ID == input {
			return m.ID, nil
		}
	}

	var matches []string
	for _, m := range milestones {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("milestone not found in project: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("milestone %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveUserID resolves a user reference: the login first, then a full
// UUID, then a UUID prefix.
func resolveUserID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("user is required")
	}

	users, err := app.Users.List(ctx)
	if err != nil {
		return "", err
	}

	for _, u := range users {
		if strings.EqualFold(u.Login, input) {
			return u.ID, nil
		}
	}

	for _, u := range users {
		if u.ID == input {
			return u.ID, nil
		}
	}

	var matches []string
	for _, u := range users {
		if strings.HasPrefix(u.ID, input) {
			matches = append(matches, u.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("user not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("user %q is ambiguous (%d matches)", input, len(matches))
	}
}
