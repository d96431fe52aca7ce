package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/domain"
)

// SQLiteAvailabilityRepo persists the raw calendar records availability is
// derived from. Schedule entries keep at most one row per user, project and
// day; writing replaces whatever was there, and writing zero hours just
// clears the slot, mirroring how the hour-entry forms behaved upstream.
type SQLiteAvailabilityRepo struct {
	db db.DBTX
}

// NewSQLiteAvailabilityRepo creates a new SQLiteAvailabilityRepo.
func NewSQLiteAvailabilityRepo(conn db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{db: conn}
}

func (r *SQLiteAvailabilityRepo) ReplaceScheduleEntry(ctx context.Context, e *domain.ScheduleEntry) error {
	del := `DELETE FROM schedule_entries WHERE user_id = ? AND project_id = ? AND date = ?`
	if _, err := r.db.ExecContext(ctx, del, e.UserID, e.ProjectID, e.Date.Format(dateLayout)); err != nil {
		return fmt.Errorf("clearing schedule entry: %w", err)
	}
	if e.Hours <= 0 {
		return nil
	}
	ins := `INSERT INTO schedule_entries (id, user_id, project_id, date, hours) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, ins, e.ID, e.UserID, e.ProjectID, e.Date.Format(dateLayout), e.Hours); err != nil {
		return fmt.Errorf("inserting schedule entry: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) ListScheduleEntries(ctx context.Context, from, to time.Time, excludeProjectID string) ([]*domain.ScheduleEntry, error) {
	query := `SELECT id, user_id, project_id, date, hours FROM schedule_entries
		WHERE date >= ? AND date <= ? AND project_id != ?
		ORDER BY user_id, date`
	return r.queryEntries(ctx, query, from.Format(dateLayout), to.Format(dateLayout), excludeProjectID)
}

func (r *SQLiteAvailabilityRepo) ListScheduleEntriesForUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	query := `SELECT id, user_id, project_id, date, hours FROM schedule_entries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, project_id`
	return r.queryEntries(ctx, query, userID, from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteAvailabilityRepo) DeleteScheduleEntriesFrom(ctx context.Context, projectID string, from time.Time) error {
	query := `DELETE FROM schedule_entries WHERE project_id = ? AND date >= ?`
	if _, err := r.db.ExecContext(ctx, query, projectID, from.Format(dateLayout)); err != nil {
		return fmt.Errorf("deleting schedule entries: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) CreateClosedEntry(ctx context.Context, e *domain.ClosedEntry) error {
	query := `INSERT INTO closed_entries (id, user_id, date) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Date.Format(dateLayout)); err != nil {
		return fmt.Errorf("inserting closed entry: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) DeleteClosedEntry(ctx context.Context, userID string, date time.Time) error {
	query := `DELETE FROM closed_entries WHERE user_id = ? AND date = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, date.Format(dateLayout)); err != nil {
		return fmt.Errorf("deleting closed entry: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) ListClosedEntries(ctx context.Context, from, to time.Time) ([]*domain.ClosedEntry, error) {
	query := `SELECT id, user_id, date FROM closed_entries
		WHERE date >= ? AND date <= ? ORDER BY user_id, date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing closed entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ClosedEntry
	for rows.Next() {
		var e domain.ClosedEntry
		var date string
		if err := rows.Scan(&e.ID, &e.UserID, &date); err != nil {
			return nil, fmt.Errorf("scanning closed entry: %w", err)
		}
		e.Date, _ = time.Parse(dateLayout, date)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating closed entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteAvailabilityRepo) CreateHoliday(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (id, date, name) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, h.ID, h.Date.Format(dateLayout), h.Name); err != nil {
		return fmt.Errorf("inserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) ListHolidays(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error) {
	query := `SELECT id, date, name FROM holidays WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var date string
		if err := rows.Scan(&h.ID, &date, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		h.Date, _ = time.Parse(dateLayout, date)
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteAvailabilityRepo) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		var date string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &date, &e.Hours); err != nil {
			return nil, fmt.Errorf("scanning schedule entry: %w", err)
		}
		e.Date, _ = time.Parse(dateLayout, date)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entries: %w", err)
	}
	return entries, nil
}
