package cli

import (
	"context"
	"fmt"

	"github.com/bradbeattie/schedules/internal/cli/formatter"
	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/spf13/cobra"
)

func newEstimateCmd(app *App) *cobra.Command {
	var projectFlag, milestoneFlag string
	var today dayValue
	var horizon int
	var commit, noExplain bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Schedule a milestone's open issues onto availability calendars",
		Long: "Compute start and due dates for every open issue in a milestone by " +
			"packing remaining hours into assignee availability. Previews by default; " +
			"--commit persists issue dates, claims schedule entries and sets the " +
			"milestone completion date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, projectID, milestoneFlag)
			if err != nil {
				return err
			}

			req := contract.NewEstimateRequest(projectID, milestoneID)
			req.Commit = commit
			req.Explain = !noExplain
			if cmd.Flags().Changed("horizon") {
				req.HorizonDays = horizon
			}
			if cmd.Flags().Changed("today") {
				now := today.Time()
				req.Now = &now
			}

			resp, err := app.Estimates.Estimate(ctx, req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatEstimate(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	cmd.Flags().StringVar(&milestoneFlag, "milestone", "", "Milestone name or ID")
	cmd.Flags().IntVar(&horizon, "horizon", 180, "Max days to search past each issue's earliest start")
	cmd.Flags().Var(&today, "today", "Override the scheduling anchor day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Persist dates and schedule entries")
	cmd.Flags().BoolVar(&noExplain, "no-explain", false, "Omit the placement-order explanation")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}
