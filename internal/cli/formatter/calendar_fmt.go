package formatter

import (
	"strings"

	"github.com/bradbeattie/schedules/internal/service"
)

// FormatCalendar renders a user's derived availability: the weekday pattern
// default, the hours committed elsewhere, and what remains free each day.
func FormatCalendar(login string, days []service.UserDay) string {
	var b strings.Builder

	b.WriteString(Header("Availability — " + login))
	b.WriteString("\n")

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		note := ""
		switch {
		case d.Holiday != "":
			note = StylePurple.Render(d.Holiday)
		case d.Closed:
			note = StyleRed.Render("closed")
		}

		free := FormatHours(d.Free)
		if d.Free <= 0 {
			free = Dim(free)
		} else {
			free = StyleGreen.Render(free)
		}

		rows = append(rows, []string{
			FormatDay(d.Date),
			FormatHours(d.Default),
			FormatHours(d.Committed),
			free,
			note,
		})
	}

	b.WriteString(RenderTable([]string{"DATE", "PATTERN", "COMMITTED", "FREE", ""}, rows))
	return b.String()
}
