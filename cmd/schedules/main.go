package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bradbeattie/schedules/internal/cli"
	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.schedules/schedules.db
	dbPath := os.Getenv("SCHEDULES_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".schedules", "schedules.db")
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)
	relationRepo := repository.NewSQLiteRelationRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	availRepo := repository.NewSQLiteAvailabilityRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case logging to stderr
	var observers []service.UseCaseObserver
	if os.Getenv("SCHEDULES_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	availSvc := service.NewAvailabilityService(availRepo, userRepo, projectRepo)

	app := &cli.App{
		Projects:     service.NewProjectService(projectRepo),
		Milestones:   service.NewMilestoneService(milestoneRepo, projectRepo, issueRepo),
		Issues:       service.NewIssueService(issueRepo, relationRepo, projectRepo, userRepo),
		Users:        service.NewUserService(userRepo),
		Availability: availSvc,
		Estimates:    service.NewEstimateService(projectRepo, milestoneRepo, issueRepo, userRepo, availSvc, uow, observers...),
		Imports:      service.NewImportService(uow, observers...),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
