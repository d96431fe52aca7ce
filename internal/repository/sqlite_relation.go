package repository

import (
	"context"
	"fmt"

	"github.com/bradbeattie/schedules/internal/db"
	"github.com/bradbeattie/schedules/internal/domain"
)

// SQLiteRelationRepo implements RelationRepo over a SQLite connection or
// transaction.
type SQLiteRelationRepo struct {
	db db.DBTX
}

// NewSQLiteRelationRepo creates a new SQLiteRelationRepo.
func NewSQLiteRelationRepo(conn db.DBTX) *SQLiteRelationRepo {
	return &SQLiteRelationRepo{db: conn}
}

func (r *SQLiteRelationRepo) Create(ctx context.Context, rel *domain.Relation) error {
	query := `INSERT INTO issue_relations (from_issue_id, to_issue_id, kind) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, rel.FromIssueID, rel.ToIssueID, string(rel.Kind))
	if err != nil {
		return fmt.Errorf("inserting relation: %w", err)
	}
	return nil
}

func (r *SQLiteRelationRepo) Delete(ctx context.Context, fromIssueID, toIssueID string) error {
	query := `DELETE FROM issue_relations WHERE from_issue_id = ? AND to_issue_id = ?`
	if _, err := r.db.ExecContext(ctx, query, fromIssueID, toIssueID); err != nil {
		return fmt.Errorf("deleting relation: %w", err)
	}
	return nil
}

func (r *SQLiteRelationRepo) ListForIssue(ctx context.Context, issueID string) ([]domain.Relation, error) {
	query := `SELECT from_issue_id, to_issue_id, kind FROM issue_relations
		WHERE from_issue_id = ? OR to_issue_id = ?
		ORDER BY from_issue_id, to_issue_id`
	rows, err := r.db.QueryContext(ctx, query, issueID, issueID)
	if err != nil {
		return nil, fmt.Errorf("listing relations: %w", err)
	}
	defer rows.Close()

	var relations []domain.Relation
	for rows.Next() {
		var rel domain.Relation
		var kind string
		if err := rows.Scan(&rel.FromIssueID, &rel.ToIssueID, &kind); err != nil {
			return nil, fmt.Errorf("scanning relation: %w", err)
		}
		rel.Kind = domain.RelationKind(kind)
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relations: %w", err)
	}
	return relations, nil
}
