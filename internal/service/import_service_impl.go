package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/importer"
	"github.com/bradbeattie/schedules/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// ImportSnapshot loads, validates and persists a snapshot file in one
// transaction; a snapshot either lands whole or not at all.
func (s *importService) ImportSnapshot(ctx context.Context, filePath string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": filePath}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	snap, err := importer.LoadSnapshot(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot file: %w", err)
	}
	if errs := importer.ValidateSnapshot(snap); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(snap)
	if err != nil {
		return nil, fmt.Errorf("converting snapshot: %w", err)
	}
	fields["project"] = converted.Project.Identifier
	fields["issue_count"] = len(converted.Issues)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		users := repository.NewSQLiteUserRepo(tx)
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		issues := repository.NewSQLiteIssueRepo(tx)
		relations := repository.NewSQLiteRelationRepo(tx)
		avail := repository.NewSQLiteAvailabilityRepo(tx)

		if err := projects.Create(ctx, converted.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, u := range converted.Users {
			if err := users.Create(ctx, u); err != nil {
				return fmt.Errorf("creating user %q: %w", u.Login, err)
			}
		}
		for _, m := range converted.Milestones {
			if err := milestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Name, err)
			}
		}
		for _, i := range converted.Issues {
			if err := issues.Create(ctx, i); err != nil {
				return fmt.Errorf("creating issue %q: %w", i.Subject, err)
			}
		}
		for _, r := range converted.Relations {
			if err := relations.Create(ctx, r); err != nil {
				return fmt.Errorf("creating relation: %w", err)
			}
		}
		for _, h := range converted.Holidays {
			if err := avail.CreateHoliday(ctx, h); err != nil {
				return fmt.Errorf("creating holiday %q: %w", h.Name, err)
			}
		}
		for _, c := range converted.ClosedDays {
			if err := avail.CreateClosedEntry(ctx, c); err != nil {
				return fmt.Errorf("creating closed day: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:        converted.Project,
		UserCount:      len(converted.Users),
		MilestoneCount: len(converted.Milestones),
		IssueCount:     len(converted.Issues),
		RelationCount:  len(converted.Relations),
		EntryCount:     len(converted.Holidays) + len(converted.ClosedDays),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("snapshot validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
