package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bradbeattie/schedules/internal/cli/formatter"
	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage schedulable users",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
		newUserPatternCmd(app),
	)

	return cmd
}

// parsePattern parses a comma-separated weekday availability pattern,
// Sunday first, e.g. "0,8,8,8,8,8,0".
func parsePattern(s string) ([7]float64, error) {
	var pattern [7]float64
	parts := strings.Split(s, ",")
	if len(parts) != 7 {
		return pattern, fmt.Errorf("pattern needs 7 comma-separated values (Sunday first), got %d", len(parts))
	}
	for i, p := range parts {
		h, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pattern, fmt.Errorf("pattern value %q is not a number", p)
		}
		pattern[i] = h
	}
	return pattern, nil
}

func formatPattern(pattern [7]float64) string {
	parts := make([]string, 7)
	for i, h := range pattern {
		parts[i] = strings.TrimSuffix(formatter.FormatHours(h), "h")
	}
	return strings.Join(parts, ",")
}

func newUserAddCmd(app *App) *cobra.Command {
	var login, name, patternFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pattern, err := parsePattern(patternFlag)
			if err != nil {
				return err
			}

			u := &domain.User{
				Login:        login,
				Name:         name,
				WeekdayHours: pattern,
			}
			if err := app.Users.Create(ctx, u); err != nil {
				return err
			}

			fmt.Printf("Created user %s (%s)\n", u.Login, formatter.TruncID(u.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Unique login")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&patternFlag, "pattern", "0,8,8,8,8,8,0", "Weekday hours, Sunday first")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(context.Background())
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					formatter.TruncID(u.ID),
					u.Login,
					u.Name,
					formatPattern(u.WeekdayHours),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "LOGIN", "NAME", "PATTERN"}, rows))
			return nil
		},
	}
}

func newUserPatternCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern <user> <hours>",
		Short: "Set a user's weekday availability pattern",
		Long:  "Set a user's default weekday hours as 7 comma-separated values, Sunday first, e.g. 0,8,8,8,8,6.5,0.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			userID, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pattern, err := parsePattern(args[1])
			if err != nil {
				return err
			}
			if err := app.Users.UpdatePattern(ctx, userID, pattern); err != nil {
				return err
			}

			fmt.Printf("Updated pattern for %s\n", args[0])
			return nil
		},
	}

	return cmd
}
