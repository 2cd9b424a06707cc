package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lantern/internal/logtail"
)

const minLogLines = 5

// loadLogs reads as many trailing log lines as fit on screen.
func (m *Model) loadLogs() {
	lines, err := logtail.Tail(m.logPath, max(minLogLines, m.height-6))
	if err != nil {
		m.logLines = []string{"unable to read " + m.logPath + ": " + err.Error()}
		return
	}
	m.logLines = lines
}

// renderLogs renders the log pane, colored by level.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Log"))
	b.WriteString(styles.FaintText.Render("  " + m.logPath))
	b.WriteString("\n\n")

	if len(m.logLines) == 0 {
		b.WriteString(styles.FaintText.Render("No log output yet"))
	}
	width := max(20, m.width-8)
	for i, line := range m.logLines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(logStyle(styles, logtail.Level(line)).Render(truncate(line, width)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Render(b.String())
}

func logStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.MutedText
	}
}
