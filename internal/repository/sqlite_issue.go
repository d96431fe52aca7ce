package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/domain"
)

// issueColumns is the canonical SELECT column list for issues.
const issueColumns = `id, project_id, milestone_id, subject, status, priority,
		estimated_hours, done_ratio, assignee_id, start_date, due_date,
		created_at, updated_at`

// SQLiteIssueRepo implements IssueRepo over a SQLite connection or
// transaction.
type SQLiteIssueRepo struct {
	db db.DBTX
}

// NewSQLiteIssueRepo creates a new SQLiteIssueRepo.
func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

func (r *SQLiteIssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	query := `INSERT INTO issues (` + issueColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.ProjectID,
		nullableStrToValue(i.MilestoneID),
		i.Subject,
		string(i.Status),
		int(i.Priority),
		nullableFloatToValue(i.EstimatedHours),
		i.DoneRatio,
		nullableStrToValue(i.AssigneeID),
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.DueDate, dateLayout),
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = ?`
	return r.scanIssue(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteIssueRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE milestone_id = ? ORDER BY created_at`
	return r.queryIssues(ctx, query, milestoneID)
}

func (r *SQLiteIssueRepo) ListOpenByMilestone(ctx context.Context, milestoneID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues
		WHERE milestone_id = ? AND status = 'open' ORDER BY created_at`
	issues, err := r.queryIssues(ctx, query, milestoneID)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return issues, nil
	}
	if err := r.attachRelations(ctx, milestoneID, issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// attachRelations loads every relation touching an open issue of the
// milestone and attaches it to whichever snapshot issues it references.
func (r *SQLiteIssueRepo) attachRelations(ctx context.Context, milestoneID string, issues []*domain.Issue) error {
	query := `SELECT from_issue_id, to_issue_id, kind FROM issue_relations
		WHERE from_issue_id IN (SELECT id FROM issues WHERE milestone_id = ? AND status = 'open')
		   OR to_issue_id IN (SELECT id FROM issues WHERE milestone_id = ? AND status = 'open')`
	rows, err := r.db.QueryContext(ctx, query, milestoneID, milestoneID)
	if err != nil {
		return fmt.Errorf("listing issue relations: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Issue, len(issues))
	for _, i := range issues {
		byID[i.ID] = i
	}
	for rows.Next() {
		var rel domain.Relation
		var kind string
		if err := rows.Scan(&rel.FromIssueID, &rel.ToIssueID, &kind); err != nil {
			return fmt.Errorf("scanning issue relation: %w", err)
		}
		rel.Kind = domain.RelationKind(kind)
		if from, ok := byID[rel.FromIssueID]; ok {
			from.Relations = append(from.Relations, rel)
		}
		if to, ok := byID[rel.ToIssueID]; ok && rel.ToIssueID != rel.FromIssueID {
			to.Relations = append(to.Relations, rel)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating issue relations: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) Update(ctx context.Context, i *domain.Issue) error {
	query := `UPDATE issues SET milestone_id = ?, subject = ?, status = ?, priority = ?,
		estimated_hours = ?, done_ratio = ?, assignee_id = ?, start_date = ?, due_date = ?,
		updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(i.MilestoneID),
		i.Subject,
		string(i.Status),
		int(i.Priority),
		nullableFloatToValue(i.EstimatedHours),
		i.DoneRatio,
		nullableStrToValue(i.AssigneeID),
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.DueDate, dateLayout),
		nowUTC(),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) UpdateSchedule(ctx context.Context, id string, start, due time.Time) error {
	query := `UPDATE issues SET start_date = ?, due_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		start.Format(dateLayout),
		due.Format(dateLayout),
		nowUTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating issue schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("updating issue schedule: issue %s not found", id)
	}
	return nil
}

func (r *SQLiteIssueRepo) Close(ctx context.Context, id string) error {
	query := `UPDATE issues SET status = 'closed', updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("closing issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) queryIssues(ctx context.Context, query string, args ...any) ([]*domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []*domain.Issue
	for rows.Next() {
		i, err := r.scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

func (r *SQLiteIssueRepo) scanIssue(row rowScanner) (*domain.Issue, error) {
	var i domain.Issue
	var status, createdAt, updatedAt string
	var priority int
	var milestoneID, assigneeID, startDate, dueDate sql.NullString
	var estimated sql.NullFloat64
	err := row.Scan(
		&i.ID, &i.ProjectID, &milestoneID, &i.Subject, &status, &priority,
		&estimated, &i.DoneRatio, &assigneeID, &startDate, &dueDate,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("issue: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}
	i.Status = domain.IssueStatus(status)
	i.Priority = domain.IssuePriority(priority)
	i.MilestoneID = strPtr(milestoneID)
	i.AssigneeID = strPtr(assigneeID)
	i.EstimatedHours = floatPtr(estimated)
	i.StartDate = parseNullableTime(startDate, dateLayout)
	i.DueDate = parseNullableTime(dueDate, dateLayout)
	i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	i.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &i, nil
}
