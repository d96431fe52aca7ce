package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/domain"
)

// SQLiteUserRepo implements UserRepo over a SQLite connection or
// transaction. The weekly availability pattern is stored serialized the
// way the rest of the row is read: one comma-joined column, Sunday first.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, login, name, weekday_hours, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Login,
		u.Name,
		formatWeekdayHours(u.WeekdayHours),
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, login, name, weekday_hours, created_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `SELECT id, login, name, weekday_hours, created_at FROM users WHERE login = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, login))
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, login, name, weekday_hours, created_at FROM users ORDER BY login`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) UpdatePattern(ctx context.Context, id string, weekdayHours [7]float64) error {
	query := `UPDATE users SET weekday_hours = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, formatWeekdayHours(weekdayHours), id)
	if err != nil {
		return fmt.Errorf("updating weekday pattern: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("updating weekday pattern: user %s not found", id)
	}
	return nil
}

func (r *SQLiteUserRepo) scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var pattern, createdAt string
	if err := row.Scan(&u.ID, &u.Login, &u.Name, &pattern, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	hours, err := parseWeekdayHours(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning user %s: %w", u.ID, err)
	}
	u.WeekdayHours = hours
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}
