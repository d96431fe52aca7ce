package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project snapshot from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Imports.ImportSnapshot(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported project %s [%s]\n", result.Project.Name, result.Project.Identifier)
			fmt.Printf("  %d users, %d milestones, %d issues, %d relations, %d calendar records\n",
				result.UserCount, result.MilestoneCount, result.IssueCount,
				result.RelationCount, result.EntryCount)
			return nil
		},
	}
}
