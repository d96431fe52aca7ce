package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are written to be safe to
// re-run against an already-migrated database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		identifier TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'open'
		                CHECK(status IN ('open','closed')),
		completion_date TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		login         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		weekday_hours TEXT NOT NULL DEFAULT '0,0,0,0,0,0,0',
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		milestone_id    TEXT REFERENCES milestones(id) ON DELETE SET NULL,
		subject         TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'open'
		                CHECK(status IN ('open','closed')),
		priority        INTEGER NOT NULL DEFAULT 2,
		estimated_hours REAL,
		done_ratio      INTEGER NOT NULL DEFAULT 0
		                CHECK(done_ratio BETWEEN 0 AND 100),
		assignee_id     TEXT REFERENCES users(id) ON DELETE SET NULL,
		start_date      TEXT,
		due_date        TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_milestone ON issues(milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_assignee ON issues(assignee_id)`,

	`CREATE TABLE IF NOT EXISTS issue_relations (
		from_issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
		to_issue_id   TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
		kind          TEXT NOT NULL DEFAULT 'relates'
		              CHECK(kind IN ('blocks','precedes','relates','duplicates','copied_to')),
		PRIMARY KEY (from_issue_id, to_issue_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issue_relations_to ON issue_relations(to_issue_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		hours      REAL NOT NULL CHECK(hours > 0),
		UNIQUE (user_id, project_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_user_date ON schedule_entries(user_id, date)`,

	`CREATE TABLE IF NOT EXISTS closed_entries (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date    TEXT NOT NULL,
		UNIQUE (user_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id   TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT ''
	)`,
}
