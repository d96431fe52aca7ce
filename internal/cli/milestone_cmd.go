package cli

import (
	"context"
	"fmt"

	"github.com/bradbeattie/schedules/internal/cli/formatter"
	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneCloseCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var projectFlag, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			m := &domain.Milestone{
				ProjectID: projectID,
				Name:      name,
			}
			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}

			fmt.Printf("Created milestone %s (%s)\n", m.Name, formatter.TruncID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			milestones, err := app.Milestones.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(milestones) == 0 {
				fmt.Println("No milestones found.")
				return nil
			}

			rows := make([][]string, 0, len(milestones))
			for _, m := range milestones {
				completion := formatter.Dim("unscheduled")
				if m.CompletionDate != nil {
					completion = formatter.FormatDay(*m.CompletionDate)
				}
				rows = append(rows, []string{
					formatter.TruncID(m.ID),
					m.Name,
					formatter.StatusPill(string(m.Status)),
					completion,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "STATUS", "COMPLETION"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newMilestoneCloseCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "close <milestone>",
		Short: "Close a milestone once all its issues are done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.Close(ctx, milestoneID); err != nil {
				return err
			}

			fmt.Printf("Closed milestone %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project identifier or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
