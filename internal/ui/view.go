package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lantern/internal/coldstart"
	"github.com/five82/lantern/internal/state"
)

const (
	imagePlaceholder = "[ hero image ]"
	bannerTitle      = "Welcome in."
	bannerSubtitle   = "The lights are on. Make yourself at home."
)

// renderColdStart renders the waiting screen: status line, progress bar and,
// on failure, the retry prompt.
func (m Model) renderColdStart() string {
	styles := m.theme.Styles()
	cs := m.snapshot.ColdStart
	if cs == nil {
		cs = coldstart.Idle{}
	}

	lines := []string{styles.Logo.Render(logoText()), ""}

	switch s := cs.(type) {
	case coldstart.Failed:
		lines = append(lines,
			styles.DangerText.Render(s.Message()),
			"",
			styles.MutedText.Render("Press ")+styles.WarningText.Render("r")+styles.MutedText.Render(" to try again."),
		)
		if m.notice != "" {
			lines = append(lines, styles.FaintText.Render(m.notice))
		}

	case coldstart.Succeeded:
		lines = append(lines,
			styles.SuccessText.Render(s.Message()),
			"",
			m.progress.ViewAs(s.Progress()/100)+" "+styles.MutedText.Render(formatPercent(s.Progress())),
			styles.FaintText.Render("Responded in "+formatDuration(s.ResponseTime)),
		)

	default:
		lines = append(lines,
			m.spinner.View()+" "+styles.Text.Render(cs.Message()),
			"",
			m.progress.ViewAs(cs.Progress()/100)+" "+styles.MutedText.Render(formatPercent(cs.Progress())),
		)
	}

	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// renderIntro renders the current intro animation frame.
func (m Model) renderIntro() string {
	return m.theme.Styles().AccentText.Render(m.frame)
}

// renderContent renders the hero slot and banner. The hero shows a
// placeholder whenever no URL is known, whether or not the prefetch is
// still running.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	img := m.snapshot.Image

	hero := heroLine(img)
	var heroView string
	if img.HasURL() {
		heroView = styles.AccentText.Render(hero)
	} else {
		heroView = styles.FaintText.Render(hero)
	}

	lines := []string{
		styles.Logo.Render(logoText()),
		"",
		heroView,
		"",
		styles.Text.Bold(true).Render(bannerTitle),
		styles.MutedText.Render(bannerSubtitle),
	}
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func heroLine(img state.ImageSnapshot) string {
	if img.HasURL() {
		return "hero " + img.URL
	}
	return imagePlaceholder
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%3.0f%%", p)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
