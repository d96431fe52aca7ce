package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the top-level YAML structure for importing a project with
// its people, milestones, issues and calendar in one file.
type Snapshot struct {
	Project    ProjectImport     `yaml:"project"`
	Users      []UserImport      `yaml:"users,omitempty"`
	Milestones []MilestoneImport `yaml:"milestones"`
	Issues     []IssueImport     `yaml:"issues"`
	Relations  []RelationImport  `yaml:"relations,omitempty"`
	Holidays   []HolidayImport   `yaml:"holidays,omitempty"`
	ClosedDays []ClosedDayImport `yaml:"closed_days,omitempty"`
}

type ProjectImport struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
}

// UserImport declares a user by ref. WeekdayHours is Sunday first and must
// carry exactly seven values when present.
type UserImport struct {
	Ref          string    `yaml:"ref"`
	Login        string    `yaml:"login"`
	Name         string    `yaml:"name"`
	WeekdayHours []float64 `yaml:"weekday_hours,omitempty"`
}

type MilestoneImport struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type IssueImport struct {
	Ref            string   `yaml:"ref"`
	Subject        string   `yaml:"subject"`
	MilestoneRef   *string  `yaml:"milestone_ref,omitempty"`
	AssigneeRef    *string  `yaml:"assignee_ref,omitempty"`
	EstimatedHours *float64 `yaml:"estimated_hours,omitempty"`
	DoneRatio      *int     `yaml:"done_ratio,omitempty"`
	Priority       *int     `yaml:"priority,omitempty"`
	Status         string   `yaml:"status,omitempty"`
	DueDate        *string  `yaml:"due_date,omitempty"`
}

type RelationImport struct {
	FromRef string `yaml:"from_ref"`
	ToRef   string `yaml:"to_ref"`
	Kind    string `yaml:"kind"`
}

type HolidayImport struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type ClosedDayImport struct {
	UserRef string `yaml:"user_ref"`
	Date    string `yaml:"date"`
}

// LoadSnapshot reads and parses a snapshot YAML file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	return &snap, nil
}
