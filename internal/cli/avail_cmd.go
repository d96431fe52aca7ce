package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAvailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avail",
		Short: "Manage availability calendars",
	}

	cmd.AddCommand(
		newAvailSetCmd(app),
		newAvailCloseCmd(app),
		newAvailOpenCmd(app),
		newAvailHolidayCmd(app),
		newAvailCalendarCmd(app),
	)

	return cmd
}

func newAvailSetCmd(app *App) *cobra.Command {
	var userFlag, projectFlag string
	var date dayValue
	var hours float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Commit a user's hours to a project on a day",
		Long:  "Record that a user spends the given hours on a project on one day. Setting 0 hours clears the commitment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			userID, err := resolveUserID(ctx, app, userFlag)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			if err := app.Availability.SetHours(ctx, userID, projectID, date.Time(), hours); err != nil {
				return err
			}

			fmt.Printf("Set %s on %s to %s\n", userFlag, date.String(), formatter.FormatHours(hours))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User login or ID")
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	cmd.Flags().Var(&date, "date", "Day (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours committed")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newAvailCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <user> <date>",
		Short: "Mark a day as unavailable for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			userID, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}
			date, err := parseDay(args[1])
			if err != nil {
				return err
			}
			if err := app.Availability.CloseDay(ctx, userID, date); err != nil {
				return err
			}

			fmt.Printf("Closed %s for %s\n", args[1], args[0])
			return nil
		},
	}

	return cmd
}

func newAvailOpenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <user> <date>",
		Short: "Reopen a previously closed day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			userID, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}
			date, err := parseDay(args[1])
			if err != nil {
				return err
			}
			if err := app.Availability.OpenDay(ctx, userID, date); err != nil {
				return err
			}

			fmt.Printf("Opened %s for %s\n", args[1], args[0])
			return nil
		},
	}

	return cmd
}

func newAvailHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage organization-wide holidays",
	}

	add := &cobra.Command{
		Use:   "add <date> <name>",
		Short: "Add a holiday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDay(args[0])
			if err != nil {
				return err
			}
			if err := app.Availability.AddHoliday(context.Background(), date, args[1]); err != nil {
				return err
			}
			fmt.Printf("Added holiday %s on %s\n", args[1], args[0])
			return nil
		},
	}

	var from, to dayValue
	list := &cobra.Command{
		Use:   "list",
		Short: "List holidays in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := app.Availability.ListHolidays(context.Background(), from.Time(), to.Time())
			if err != nil {
				return err
			}

			if len(holidays) == 0 {
				fmt.Println("No holidays found.")
				return nil
			}

			rows := make([][]string, 0, len(holidays))
			for _, h := range holidays {
				rows = append(rows, []string{formatter.FormatDay(h.Date), h.Name})
			}
			fmt.Print(formatter.RenderTable([]string{"DATE", "NAME"}, rows))
			return nil
		},
	}
	list.Flags().Var(&from, "from", "Range start (YYYY-MM-DD)")
	list.Flags().Var(&to, "to", "Range end (YYYY-MM-DD)")
	_ = list.MarkFlagRequired("from")
	_ = list.MarkFlagRequired("to")

	cmd.AddCommand(add, list)
	return cmd
}

func newAvailCalendarCmd(app *App) *cobra.Command {
	var fromFlag dayValue
	var days int

	cmd := &cobra.Command{
		Use:   "calendar <user>",
		Short: "Show a user's derived availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			userID, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}

			from := time.Now().UTC()
			if cmd.Flags().Changed("from") {
				from = fromFlag.Time()
			}
			to := from.AddDate(0, 0, days)

			calendar, err := app.Availability.UserCalendar(ctx, userID, from, to)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatCalendar(args[0], calendar))
			return nil
		},
	}

	cmd.Flags().Var(&fromFlag, "from", "Range start (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&days, "days", 14, "Number of days to show")

	return cmd
}
