// Package tui renders a live dialogue run in the terminal. It is a thin
// viewer over the run's event stream; all protocol logic stays in the
// orchestrator.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tengxufei/bedrockbio/internal/orchestrator"
	"github.com/tengxufei/bedrockbio/internal/stream"
)

// eventMsg delivers the next run event to the bubbletea loop.
type eventMsg struct {
	ev stream.Event
	ok bool
}

// RunView is the bubbletea model for one run.
type RunView struct {
	ctx    context.Context
	cancel context.CancelFunc
	run    *orchestrator.Run

	spinner spinner.Model
	stage   string
	lines   []string
	report  string
	chat    string
	failed  bool
	done    bool
	width   int
	height  int

	titleStyle lipgloss.Style
	stageStyle lipgloss.Style
	lineStyle  lipgloss.Style
	errStyle   lipgloss.Style
	chatStyle  lipgloss.Style
}

// NewRunView creates the view for a started run. Quitting the view cancels
// the run via the derived context.
func NewRunView(ctx context.Context, run *orchestrator.Run) *RunView {
	ctx, cancel := context.WithCancel(ctx)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	return &RunView{
		ctx:        ctx,
		cancel:     cancel,
		run:        run,
		spinner:    sp,
		stage:      "Starting",
		width:      80,
		height:     24,
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#45B7D1")),
		stageStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC857")),
		lineStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		chatStyle:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#96E6A1")),
	}
}

func (m *RunView) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := m.run.Next(m.ctx)
		return eventMsg{ev: ev, ok: ok}
	}
}

// Init starts the spinner and the event pump.
func (m *RunView) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// Update handles events, keys and resizes.
func (m *RunView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventMsg:
		if !msg.ok {
			m.done = true
			return m, tea.Quit
		}
		m.apply(msg.ev)
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RunView) apply(ev stream.Event) {
	switch ev.Type {
	case stream.EventStatus:
		m.stage = fmt.Sprintf("%s: %s", ev.Stage, ev.Message)
		if ev.Status == stream.StageError {
			m.failed = true
		}
	case stream.EventLog:
		m.lines = append(m.lines, ev.Content)
	case stream.EventChatMessage:
		m.chat = ev.Content
	case stream.EventReport:
		m.report = ev.Content
	}
}

// Report returns the final report markdown, if the run produced one.
func (m *RunView) Report() string {
	return m.report
}

// View renders the run.
func (m *RunView) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("bedrockbio · "+m.run.Task) + "\n")
	stage := m.stage
	if m.failed {
		stage = m.errStyle.Render(stage)
	} else {
		stage = m.stageStyle.Render(stage)
	}
	if m.done {
		b.WriteString("  " + stage + "\n\n")
	} else {
		b.WriteString(m.spinner.View() + " " + stage + "\n\n")
	}

	// Show as many trailing dialogue lines as fit.
	visible := m.height - 6
	if visible < 3 {
		visible = 3
	}
	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for _, line := range lines {
		b.WriteString(m.lineStyle.Render(truncate(line, m.width-2)) + "\n")
	}

	if m.chat != "" {
		b.WriteString("\n" + m.chatStyle.Render(truncate(m.chat, m.width-2)) + "\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
