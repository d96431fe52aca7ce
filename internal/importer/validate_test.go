package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string     { return &s }
func ptrInt(i int) *int           { return &i }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSnapshot() *Snapshot {
	return &Snapshot{
		Project: ProjectImport{Identifier: "acme", Name: "Acme"},
		Users: []UserImport{
			{Ref: "alice", Login: "alice", Name: "Alice", WeekdayHours: []float64{0, 8, 8, 8, 8, 8, 0}},
		},
		Milestones: []MilestoneImport{
			{Ref: "v1", Name: "v1.0"},
		},
		Issues: []IssueImport{
			{Ref: "setup", Subject: "Set up environment", MilestoneRef: ptrStr("v1"), AssigneeRef: ptrStr("alice"), EstimatedHours: ptrFloat(8)},
		},
	}
}

func TestValidateSnapshot_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSnapshot(validMinimalSnapshot()))
}

func TestValidateSnapshot_ValidFull(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Issues = append(snap.Issues, IssueImport{
		Ref: "deploy", Subject: "Deploy", MilestoneRef: ptrStr("v1"), AssigneeRef: ptrStr("alice"),
		EstimatedHours: ptrFloat(4), Priority: ptrInt(4), DoneRatio: ptrInt(25),
		Status: "open", DueDate: ptrStr("2026-10-01"),
	})
	snap.Relations = []RelationImport{{FromRef: "setup", ToRef: "deploy", Kind: "blocks"}}
	snap.Holidays = []HolidayImport{{Date: "2026-12-25", Name: "Christmas"}}
	snap.ClosedDays = []ClosedDayImport{{UserRef: "alice", Date: "2026-09-03"}}

	assert.Empty(t, ValidateSnapshot(snap))
}

func TestValidateSnapshot_ProjectErrors(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Project.Identifier = "Has Spaces"
	snap.Project.Name = ""

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 2)
}

func TestValidateSnapshot_DuplicateRefs(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Issues = append(snap.Issues, snap.Issues[0])

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate ref")
}

func TestValidateSnapshot_DanglingRefs(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Issues[0].MilestoneRef = ptrStr("v9")
	snap.Issues[0].AssigneeRef = ptrStr("bob")
	snap.Relations = []RelationImport{{FromRef: "setup", ToRef: "missing", Kind: "blocks"}}
	snap.ClosedDays = []ClosedDayImport{{UserRef: "nobody", Date: "2026-09-03"}}

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 4)
}

func TestValidateSnapshot_IssueFieldRanges(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Issues[0].EstimatedHours = ptrFloat(-1)
	snap.Issues[0].DoneRatio = ptrInt(150)
	snap.Issues[0].Priority = ptrInt(9)
	snap.Issues[0].Status = "pending"
	snap.Issues[0].DueDate = ptrStr("next tuesday")

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 5)
}

func TestValidateSnapshot_WeekdayHoursShape(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Users[0].WeekdayHours = []float64{8, 8, 8}

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "7 values")
}

func TestValidateSnapshot_SelfRelation(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Relations = []RelationImport{{FromRef: "setup", ToRef: "setup", Kind: "blocks"}}

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 1)
}

func TestValidateSnapshot_BadRelationKind(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Issues = append(snap.Issues, IssueImport{Ref: "b", Subject: "B"})
	snap.Relations = []RelationImport{{FromRef: "setup", ToRef: "b", Kind: "follows"}}

	errs := ValidateSnapshot(snap)
	assert.Len(t, errs, 1)
}
