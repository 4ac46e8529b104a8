package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/logger"
	"github.com/haoyun/fundwatch/internal/ui"
	"github.com/haoyun/fundwatch/internal/ui/component"
	"github.com/haoyun/fundwatch/internal/ui/router"
	"github.com/haoyun/fundwatch/internal/ui/style"
)

const logFetchLimit = 200

// LogsScreen shows the in-memory log buffer. The TUI logger writes here
// instead of stdout, so this is the only place log output is visible.
type LogsScreen struct {
	ctx     *ui.Context
	helpBar *component.HelpBar

	entries []logger.LogEntry
	offset  int

	width  int
	height int
}

// NewLogsScreen creates the log viewer
func NewLogsScreen(ctx *ui.Context) *LogsScreen {
	s := &LogsScreen{
		ctx:     ctx,
		helpBar: component.NewHelpBar(),
	}
	s.helpBar.SetKeyBindings(ctx.Keys.ContextualHelp(ui.RouteLogs))
	return s
}

// Init loads the current buffer contents
func (s *LogsScreen) Init() tea.Cmd {
	s.entries = s.ctx.LogBuffer.Recent(logFetchLimit)
	s.offset = 0
	return nil
}

// Update handles messages for the log viewer
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := s.ctx.Keys
		switch {
		case key.Matches(msg, keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, keys.Up):
			if s.offset < len(s.entries)-s.visibleLines() {
				s.offset++
			}
		case key.Matches(msg, keys.Down):
			if s.offset > 0 {
				s.offset--
			}
		case key.Matches(msg, keys.Refresh):
			s.entries = s.ctx.LogBuffer.Recent(logFetchLimit)
			s.offset = 0
		}

	case ui.SnapshotMsg, ui.FetchFailedMsg:
		// Polling keeps running underneath; pick up its log lines
		s.entries = s.ctx.LogBuffer.Recent(logFetchLimit)
	}

	return s, nil
}

func (s *LogsScreen) visibleLines() int {
	lines := s.height - 6
	if lines < 5 {
		lines = 5
	}
	return lines
}

// View renders the log viewer
func (s *LogsScreen) View() string {
	title := style.TitleStyle.Render(fmt.Sprintf("日志 (%d)", len(s.entries)))

	var body string
	if len(s.entries) == 0 {
		body = style.MutedStyle.Render("暂无日志")
	} else {
		visible := s.visibleLines()
		end := len(s.entries) - s.offset
		start := end - visible
		if start < 0 {
			start = 0
		}

		lines := make([]string, 0, end-start)
		for _, entry := range s.entries[start:end] {
			lines = append(lines, s.renderEntry(entry))
		}
		body = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, s.helpBar.View())
}

func (s *LogsScreen) renderEntry(entry logger.LogEntry) string {
	var levelStyle lipgloss.Style
	switch strings.ToLower(entry.Level) {
	case "error", "fatal", "panic":
		levelStyle = style.ErrorStyle
	case "warn":
		levelStyle = style.WarningStyle
	case "debug":
		levelStyle = style.MutedStyle
	default:
		levelStyle = style.InfoStyle
	}

	ts := entry.Timestamp.Format("15:04:05")
	return fmt.Sprintf("%s %s %s",
		style.MutedStyle.Render(ts),
		levelStyle.Render(strings.ToUpper(entry.Level)),
		entry.Message)
}

// SetSize adjusts layout to the terminal size
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}
