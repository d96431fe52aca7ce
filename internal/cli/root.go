package cli

import (
	"github.com/bradbeattie/schedules/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Milestones   service.MilestoneService
	Issues       service.IssueService
	Users        service.UserService
	Availability service.AvailabilityService
	Estimates    service.EstimateService
	Imports      service.ImportService
}

// NewRootCmd creates the top-level "schedules" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "schedules",
		Short: "Capacity-aware issue scheduling over availability calendars",
	}

	root.AddCommand(
		newProjectCmd(app),
		newMilestoneCmd(app),
		newIssueCmd(app),
		newUserCmd(app),
		newAvailCmd(app),
		newEstimateCmd(app),
		newImportCmd(app),
	)

	return root
}
