package cli

import (
	"context"
	"fmt"

	"github.com/bradbeattie/schedules/internal/cli/formatter"
	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/spf13/cobra"
)

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage issues",
	}

	cmd.AddCommand(
		newIssueAddCmd(app),
		newIssueListCmd(app),
		newIssueShowCmd(app),
		newIssueUpdateCmd(app),
		newIssueCloseCmd(app),
		newIssueRelateCmd(app),
		newIssueUnrelateCmd(app),
	)

	return cmd
}

func newIssueAddCmd(app *App) *cobra.Command {
	var projectFlag, milestoneFlag, subject, assignee string
	var hours float64
	var priority, done int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			i := &domain.Issue{
				ProjectID: projectID,
				Subject:   subject,
				Priority:  domain.IssuePriority(priority),
				DoneRatio: done,
			}
			if milestoneFlag != "" {
				milestoneID, err := resolveMilestoneID(ctx, app, projectID, milestoneFlag)
				if err != nil {
					return err
				}
				i.MilestoneID = &milestoneID
			}
			if assignee != "" {
				userID, err := resolveUserID(ctx, app, assignee)
				if err != nil {
					return err
				}
				i.AssigneeID = &userID
			}
			if cmd.Flags().Changed("hours") {
				i.EstimatedHours = &hours
			}

			if err := app.Issues.Create(ctx, i); err != nil {
				return err
			}

			fmt.Printf("Created issue %s (%s)\n", i.Subject, formatter.TruncID(i.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	cmd.Flags().StringVar(&milestoneFlag, "milestone", "", "Milestone name or ID")
	cmd.Flags().StringVar(&subject, "subject", "", "Issue subject")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee login or ID")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().IntVar(&priority, "priority", int(domain.PriorityNormal), "Priority 1 (low) to 5 (immediate)")
	cmd.Flags().IntVar(&done, "done", 0, "Done ratio 0-100")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newIssueListCmd(app *App) *cobra.Command {
	var projectFlag, milestoneFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open issues in a milestone",
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
			issues, err := app.Issues.ListByMilestone(ctx, milestoneID)
			if err != nil {
				return err
			}

			if len(issues) == 0 {
				fmt.Println("No open issues found.")
				return nil
			}

			rows := make([][]string, 0, len(issues))
			for _, i := range issues {
				hours := formatter.Dim("?")
				if i.EstimatedHours != nil {
					hours = formatter.FormatHours(i.RemainingHours())
				}
				due := formatter.Dim("unscheduled")
				if i.DueDate != nil {
					due = formatter.FormatDay(*i.DueDate)
				}
				rows = append(rows, []string{
					formatter.TruncID(i.ID),
					i.Subject,
					formatter.PriorityBadge(i.Priority),
					hours,
					fmt.Sprintf("%d%%", i.DoneRatio),
					due,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "SUBJECT", "PRIORITY", "REMAINING", "DONE", "DUE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	cmd.Flags().StringVar(&milestoneFlag, "milestone", "", "Milestone name or ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}

func newIssueShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <issue-id>",
		Short: "Show an issue's details and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			i, err := app.Issues.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			relations, err := app.Issues.ListRelations(ctx, i.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Bold(i.Subject))
			fmt.Printf("ID:        %s\n", i.ID)
			fmt.Printf("Status:    %s\n", formatter.StatusPill(string(i.Status)))
			fmt.Printf("Priority:  %s\n", formatter.PriorityBadge(i.Priority))
			if i.EstimatedHours != nil {
				fmt.Printf("Estimate:  %s (%d%% done, %s remaining)\n",
					formatter.FormatHours(*i.EstimatedHours), i.DoneRatio,
					formatter.FormatHours(i.RemainingHours()))
			} else {
				fmt.Printf("Estimate:  %s\n", formatter.Dim("none"))
			}
			if i.AssigneeID != nil {
				fmt.Printf("Assignee:  %s\n", *i.AssigneeID)
			}
			if i.StartDate != nil && i.DueDate != nil {
				fmt.Printf("Scheduled: %s to %s\n",
					formatter.FormatDay(*i.StartDate), formatter.FormatDay(*i.DueDate))
			}
			for _, r := range relations {
				if r.FromIssueID == i.ID {
					fmt.Printf("%s %s\n", formatter.Dim(string(r.Kind)+" →"), formatter.TruncID(r.ToIssueID))
				} else {
					fmt.Printf("%s %s\n", formatter.Dim("← "+string(r.Kind)), formatter.TruncID(r.FromIssueID))
				}
			}
			return nil
		},
	}
}

func newIssueUpdateCmd(app *App) *cobra.Command {
	var subject, assignee string
	var hours float64
	var priority, done int

	cmd := &cobra.Command{
		Use:   "update <issue-id>",
		Short: "Update an issue's subject, effort or assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			i, err := app.Issues.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("subject") {
				i.Subject = subject
			}
			if cmd.Flags().Changed("hours") {
				i.EstimatedHours = &hours
			}
			if cmd.Flags().Changed("priority") {
				i.Priority = domain.IssuePriority(priority)
			}
			if cmd.Flags().Changed("done") {
				i.DoneRatio = done
			}
			if cmd.Flags().Changed("assignee") {
				if assignee == "" {
					i.AssigneeID = nil
				} else {
					userID, err := resolveUserID(ctx, app, assignee)
					if err != nil {
						return err
					}
					i.AssigneeID = &userID
				}
			}

			if err := app.Issues.Update(ctx, i); err != nil {
				return err
			}

			fmt.Printf("Updated issue %s\n", formatter.TruncID(i.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Issue subject")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee login or ID (empty to unassign)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1 (low) to 5 (immediate)")
	cmd.Flags().IntVar(&done, "done", 0, "Done ratio 0-100")

	return cmd
}

func newIssueCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close <issue-id>",
		Short: "Close an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Issues.Close(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Closed issue %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newIssueRelateCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "relate <from-issue-id> <to-issue-id>",
		Short: "Relate two issues",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := app.Issues.Relate(ctx, args[0], args[1], domain.RelationKind(kind)); err != nil {
				return err
			}

			fmt.Printf("Related %s %s %s\n", formatter.TruncID(args[0]), kind, formatter.TruncID(args[1]))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.RelationBlocks), "Relation kind (blocks, precedes, relates, duplicates, copied_to)")

	return cmd
}

func newIssueUnrelateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unrelate <from-issue-id> <to-issue-id>",
		Short: "Remove a relation between two issues",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Issues.Unrelate(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Unrelated %s from %s\n", formatter.TruncID(args[0]), formatter.TruncID(args[1]))
			return nil
		},
	}
}
