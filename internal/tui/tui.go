package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/stridesearch/sslaunch/internal/launcher"
	"github.com/stridesearch/sslaunch/internal/model"
	"github.com/stridesearch/sslaunch/internal/output"
	"github.com/stridesearch/sslaunch/internal/util"
)

const (
	minWidth  = 40
	minHeight = 10

	// Rows above the output box: header line plus the bordered button.
	headerHeight = 1
	buttonHeight = 3
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")). // Cyan
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 2)

	busyButtonStyle = buttonStyle.
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240"))

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // Red
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // Yellow
	stderrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true)
)

// RunMsg carries the outcome of one execution back to the UI thread.
type RunMsg struct {
	record model.RunRecord
	result model.Result
	err    error
}

// Model state
type Model struct {
	ctx      context.Context
	logger   *zap.Logger
	handler  *launcher.Handler
	viewport viewport.Model

	ready         bool
	width, height int
	running       bool
	showHelp      bool
	helpContent   string

	last *model.RunRecord
	err  error
}

// NewModel creates the terminal shell around handler. Runs started from the
// shell use ctx, so cancelling it kills a running child.
func NewModel(ctx context.Context, logger *zap.Logger, handler *launcher.Handler) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle()

	return Model{
		ctx:      ctx,
		logger:   logger,
		handler:  handler,
		viewport: vp,
	}
}

// Init initializes the model and returns the initial command.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(model.WindowTitle)
}

// run returns a command executing the program off the UI goroutine.
func (m Model) run() tea.Cmd {
	ctx, h := m.ctx, m.handler
	return func() tea.Msg {
		record, result, err := h.Execute(ctx)
		return RunMsg{record: record, result: result, err: err}
	}
}

// trigger is the button callback.
func (m Model) trigger() (Model, tea.Cmd) {
	if m.running {
		m.logger.Debug("Ignoring activation while a run is in progress")
		return m, nil
	}
	m.running = true
	m.err = nil
	return m, m.run()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case RunMsg:
		return m.applyRun(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Run):
			if m.showHelp {
				m.showHelp = false
			}
			return m.trigger()
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.onButton(msg) {
			return m.trigger()
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minWidth)
		m.height = max(msg.Height, minHeight)

		frameW, frameH := outputStyle.GetFrameSize()
		m.viewport.Width = m.width - frameW
		m.viewport.Height = m.height - headerHeight - buttonHeight - frameH
		m.helpContent = renderHelp(m.viewport.Width)
		m.ready = true
		m.refresh()
	}

	return m, nil
}

// applyRun folds a finished run into the model. Output is appended here, on
// the UI goroutine, and the view is scrolled to the end.
func (m Model) applyRun(msg RunMsg) Model {
	if errors.Is(msg.err, launcher.ErrBusy) {
		return m
	}
	m.running = false
	rec := msg.record
	m.last = &rec

	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.handler.Apply(msg.result)
	m.refresh()
	return m
}

// refresh re-renders the buffer into the viewport and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBuffer())
	m.viewport.GotoBottom()
}

func (m Model) renderBuffer() string {
	var b strings.Builder
	for _, seg := range m.handler.Buffer().Segments() {
		if seg.Stream == output.Stderr {
			lines := strings.Split(seg.Text, "\n")
			for i, line := range lines {
				if line != "" {
					b.WriteString(stderrStyle.Render(line))
				}
				if i < len(lines)-1 {
					b.WriteString("\n")
				}
			}
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// onButton reports whether a mouse event is a left click inside the button.
func (m Model) onButton(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	w := lipgloss.Width(m.renderButton())
	return msg.Y >= headerHeight && msg.Y < headerHeight+buttonHeight && msg.X >= 0 && msg.X < w
}

func (m Model) renderButton() string {
	if m.running {
		return busyButtonStyle.Render(model.ButtonLabel + " …")
	}
	return buttonStyle.Render(model.ButtonLabel)
}

func (m Model) renderStatus(width int) string {
	var status string
	switch {
	case m.running:
		status = runningStyle.Render("running " + m.handler.Executable())
	case m.err != nil:
		status = failedStyle.Render(m.errorText())
	case m.last != nil:
		text := fmt.Sprintf("%s in %s", m.last.Label(), util.FormatDuration(m.last.Duration))
		if len(m.last.Findings) > 0 {
			text += " · " + m.last.Findings[0]
		}
		if m.last.Status() == model.StatusSucceeded {
			status = successStyle.Render(text)
		} else {
			status = runningStyle.Render(text)
		}
	default:
		status = hintStyle.Render(keys.shortHelp())
	}
	return util.PadToWidth(status, width)
}

func (m Model) errorText() string {
	if m.last != nil && len(m.last.Findings) > 0 {
		return m.last.Findings[0]
	}
	return m.err.Error()
}

// View renders the TUI to a string.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	title := titleStyle.Render(model.WindowTitle)
	statusWidth := m.width - lipgloss.Width(title) - 1
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, " ",
		truncateStyled(m.renderStatus(statusWidth), statusWidth))

	body := m.viewport.View()
	if m.showHelp {
		body = clipLines(m.helpContent, m.viewport.Height)
	}
	box := outputStyle.
		Width(m.viewport.Width + outputStyle.GetHorizontalPadding()).
		Height(m.viewport.Height).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderButton(), box)
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// truncateStyled cuts a styled string that is wider than width.
func truncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return util.FitToWidth(util.StripANSI(s), width)
}
