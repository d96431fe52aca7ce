package formatter

import (
	"testing"
	"time"

	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/bradbeattie/schedules/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFormatEstimate_RendersScheduleAndWarnings(t *testing.T) {
	start := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	resp := &contract.EstimateResponse{
		MilestoneName:  "Release 1",
		CompletionDate: start.AddDate(0, 0, 3),
		Issues: []contract.IssueSchedule{
			{
				IssueID:      "aaaaaaaa-0000-0000-0000-000000000000",
				Subject:      "Build importer",
				AssigneeName: "Alice",
				Priority:     4,
				Hours:        12,
				StartDate:    start,
				DueDate:      start.AddDate(0, 0, 2),
			},
		},
		Allocations: []contract.DayAllocation{
			{UserID: "bbbbbbbb-0000-0000-0000-000000000000", Date: start, Hours: 8},
		},
		Warnings: []string{"Alice has no availability calendar"},
	}

	out := FormatEstimate(resp)
	assert.Contains(t, out, "Build importer")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "12h")
	assert.Contains(t, out, "2026-09-02 Wed")
	assert.Contains(t, out, "2026-09-05 Sat")
	assert.Contains(t, out, "Alice has no availability calendar")
	assert.Contains(t, out, "Preview")
	assert.NotContains(t, out, "Wave")
}

func TestFormatEstimate_ExplanationUsesSubjects(t *testing.T) {
	resp := &contract.EstimateResponse{
		MilestoneName:  "Release 1",
		Committed:      true,
		CompletionDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Issues: []contract.IssueSchedule{
			{IssueID: "id-blocker", Subject: "Design schema"},
			{IssueID: "id-float", Subject: "Write docs"},
		},
		Explanation: &contract.EstimateExplanation{
			Waves:         [][]string{{"id-blocker"}},
			FloatingOrder: []string{"id-float"},
		},
	}

	out := FormatEstimate(resp)
	assert.Contains(t, out, "Committed")
	assert.Contains(t, out, "Wave 1: Design schema")
	assert.Contains(t, out, "Floating: Write docs")
}

func TestFormatCalendar_MarksClosedAndHolidayDays(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	days := []service.UserDay{
		{Date: monday, Default: 8, Committed: 3, Free: 5},
		{Date: monday.AddDate(0, 0, 1), Default: 8, Closed: true},
		{Date: monday.AddDate(0, 0, 2), Default: 8, Holiday: "Founders Day"},
	}

	out := FormatCalendar("alice", days)
	assert.Contains(t, out, "AVAILABILITY — ALICE")
	assert.Contains(t, out, "5h")
	assert.Contains(t, out, "closed")
	assert.Contains(t, out, "Founders Day")
}
