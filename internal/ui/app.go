package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lantern/internal/coldstart"
	"github.com/five82/lantern/internal/prefs"
	"github.com/five82/lantern/internal/sequence"
)

// Sequence is the startup sequence the UI renders and drives.
type Sequence interface {
	Snapshot() sequence.Snapshot
	Changed() <-chan struct{}
	Retry() error
}

// FrameSource provides the intro animation frame currently on screen.
type FrameSource interface {
	Frame() string
	Changed() <-chan struct{}
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Sequence Sequence
	Intro    FrameSource
	// Signals are extra change notifications, such as the cold start gate's,
	// that should trigger a redraw.
	Signals   []<-chan struct{}
	ThemeName string
	PrefsPath string
	// LogPath is the file shown in the log pane; empty disables the pane.
	LogPath string
	Logger  *slog.Logger
}

const (
	refreshEvery     = 100 * time.Millisecond
	maxProgressWidth = 60
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	seq       Sequence
	intro     FrameSource
	signals   []<-chan struct{}
	prefsPath string
	logPath   string
	logger    *slog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	progress progress.Model
	spinner  spinner.Model
	width    int
	height   int
	showHelp bool
	showLogs bool

	// Data state
	snapshot sequence.Snapshot
	frame    string
	notice   string
	logLines []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	signals := []<-chan struct{}{opts.Sequence.Changed()}
	if opts.Intro != nil {
		signals = append(signals, opts.Intro.Changed())
	}
	signals = append(signals, opts.Signals...)

	m := Model{
		ctx:       ctx,
		seq:       opts.Sequence,
		intro:     opts.Intro,
		signals:   signals,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		logger:    logger.With("component", "ui"),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Points)),
	}
	m.keys.Logs.SetEnabled(opts.LogPath != "")
	m.applyTheme(GetTheme(themeName))
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(refreshEvery),
	}
	for _, ch := range m.signals {
		cmds = append(cmds, waitCmd(m.ctx, ch))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(maxProgressWidth, max(10, msg.Width-10))
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitCmd(m.ctx, msg.ch)

	case tickMsg:
		m.refresh()
		if m.showLogs {
			m.loadLogs()
		}
		return m, tickCmd(refreshEvery)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	switch {
	case m.showLogs:
		body = m.renderLogs()
	case m.snapshot.Phase == sequence.AwaitingColdStart:
		body = m.renderColdStart()
	case m.snapshot.Phase == sequence.PlayingIntro:
		body = m.renderIntro()
	default:
		body = m.renderContent()
	}

	footer := m.theme.Styles().Footer.Render(m.help.View(m.keys))
	if m.width == 0 || m.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, body, footer)
	}
	main := lipgloss.Place(m.width, max(1, m.height-1), lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			m.loadLogs()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save prefs failed", "error", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		m.notice = ""
		if err := m.seq.Retry(); err != nil {
			m.logger.Warn("retry rejected", "error", err)
			if !errors.Is(err, coldstart.ErrAlreadyReady) {
				m.notice = err.Error()
			}
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

// refresh pulls the latest snapshot. Retry is only offered on a failed attempt.
func (m *Model) refresh() {
	m.snapshot = m.seq.Snapshot()
	if m.intro != nil {
		m.frame = m.intro.Frame()
	}
	cs := m.snapshot.ColdStart
	failed := m.snapshot.Phase == sequence.AwaitingColdStart && cs != nil && cs.Errored()
	m.keys.Retry.SetEnabled(failed)
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	width := m.progress.Width
	m.progress = progress.New(
		progress.WithGradient(t.GradientFrom, t.GradientTo),
		progress.WithoutPercentage(),
	)
	if width > 0 {
		m.progress.Width = width
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))

	styles := t.Styles()
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText
}

// Messages

type tickMsg time.Time

type changedMsg struct {
	ch <-chan struct{}
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitCmd blocks until ch fires. It yields nothing once ctx is done so the
// goroutine does not outlive the program.
func waitCmd(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return changedMsg{ch: ch}
		case <-ctx.Done():
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return m.ctx.Err()
	}
	return err
}
