package formatter

import (
	"fmt"
	"strings"

	"github.com/bradbeattie/schedules/internal/contract"
	"github.com/bradbeattie/schedules/internal/domain"
)

// FormatEstimate renders an estimate run: the per-issue schedule table, the
// claimed availability per user and day, warnings, and (when requested) the
// wave-by-wave placement order.
func FormatEstimate(resp *contract.EstimateResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Estimate — %s", resp.MilestoneName)))
	b.WriteString("\n")
	if resp.Committed {
		b.WriteString(StyleGreen.Render("Committed") + Dim(" — issue dates and schedule entries persisted") + "\n")
	} else {
		b.WriteString(Dim("Preview — run with --commit to persist") + "\n")
	}
	b.WriteString(fmt.Sprintf("Milestone completion: %s\n\n", Bold(FormatDay(resp.CompletionDate))))

	subjects := make(map[string]string, len(resp.Issues))

	headers := []string{"ISSUE", "SUBJECT", "ASSIGNEE", "PRIORITY", "HOURS", "START", "DUE"}
	rows := make([][]string, 0, len(resp.Issues))
	for _, is := range resp.Issues {
		subjects[is.IssueID] = is.Subject
		rows = append(rows, []string{
			Dim(TruncID(is.IssueID)),
			is.Subject,
			is.AssigneeName,
			PriorityBadge(domain.IssuePriority(is.Priority)),
			FormatHours(is.Hours),
			FormatDay(is.StartDate),
			FormatDay(is.DueDate),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(resp.Allocations) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Claimed hours"))
		b.WriteString("\n")
		allocRows := make([][]string, 0, len(resp.Allocations))
		for _, a := range resp.Allocations {
			allocRows = append(allocRows, []string{
				Dim(TruncID(a.UserID)),
				FormatDay(a.Date),
				FormatHours(a.Hours),
			})
		}
		b.WriteString(RenderTable([]string{"USER", "DATE", "HOURS"}, allocRows))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Warnings"))
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("⚠ "+w) + "\n")
		}
	}

	if resp.Explanation != nil {
		b.WriteString("\n")
		b.WriteString(Header("Placement order"))
		b.WriteString("\n")
		for i, wave := range resp.Explanation.Waves {
			b.WriteString(fmt.Sprintf("Wave %d: %s\n", i+1, joinSubjects(wave, subjects)))
		}
		if len(resp.Explanation.FloatingOrder) > 0 {
			b.WriteString(fmt.Sprintf("Floating: %s\n", joinSubjects(resp.Explanation.FloatingOrder, subjects)))
		}
	}

	return b.String()
}

func joinSubjects(ids []string, subjects map[string]string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, domain.CoalesceStr(subjects[id], TruncID(id)))
	}
	return strings.Join(parts, ", ")
}
