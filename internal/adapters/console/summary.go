package console

import (
	"github.com/charmbracelet/lipgloss"

	"apkcollect/internal/application/commands"
)

var (
	// Colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Muted   = lipgloss.Color("#6B7280") // Gray

	SummaryOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	SummaryPartial = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning)

	Detail = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(2)
)

// Summary renders the end-of-run report. Colors are dropped when the
// output is not a terminal.
func Summary(result *commands.CollectResult) string {
	if result == nil {
		return ""
	}

	style := SummaryOK
	if len(result.Failed) > 0 {
		style = SummaryPartial
	}

	out := style.Render(result.Message)
	for _, failure := range result.Failed {
		out += "\n" + Detail.Render(failure.Error())
	}
	return out
}
