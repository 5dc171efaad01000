package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasgio/gam/internal/logger"
)

type LogsViewModel struct {
	width  int
	height int
	offset int
	active bool
	// errorsOnly hides everything below WARN.
	errorsOnly bool
	all        []logger.LogEntry
	logs       []logger.LogEntry
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LogsViewModel) Activate() {
	m.active = true
	m.all = logger.GetLogs()
	m.applyFilter()
	m.scrollToEnd()
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
	m.offset = 0
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) Entries() []logger.LogEntry {
	return m.logs
}

func (m *LogsViewModel) applyFilter() {
	if !m.errorsOnly {
		m.logs = m.all
		return
	}
	m.logs = m.logs[:0:0]
	for _, entry := range m.all {
		if entry.Level == "WARN" || entry.Level == "ERROR" {
			m.logs = append(m.logs, entry)
		}
	}
}

func (m *LogsViewModel) visibleLines() int {
	if n := m.height - 8; n > 1 {
		return n
	}
	return 1
}

func (m *LogsViewModel) maxOffset() int {
	if n := len(m.logs) - m.visibleLines(); n > 0 {
		return n
	}
	return 0
}

func (m *LogsViewModel) scrollToEnd() {
	m.offset = m.maxOffset()
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.offset--
	case "down", "j":
		m.offset++
	case "pgup":
		m.offset -= m.visibleLines()
	case "pgdown":
		m.offset += m.visibleLines()
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	case "e":
		m.errorsOnly = !m.errorsOnly
		m.applyFilter()
		m.scrollToEnd()
	case "r":
		m.all = logger.GetLogs()
		m.applyFilter()
		m.scrollToEnd()
	}

	m.offset = max(0, min(m.offset, m.maxOffset()))
	return nil
}

func levelColor(level string) lipgloss.Color {
	switch level {
	case "ERROR":
		return lipgloss.Color("#EF4444")
	case "WARN":
		return lipgloss.Color("#F59E0B")
	case "DEBUG":
		return lipgloss.Color("#6B7280")
	default:
		return lipgloss.Color("#E5E7EB")
	}
}

func (m *LogsViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("Session Logs (%d entries)", len(m.logs))
	if m.errorsOnly {
		title += " [warnings and errors]"
	}
	b.WriteString(formTitleStyle.Padding(1, 0).Render(title))
	b.WriteString("\n\n")

	if len(m.logs) == 0 {
		b.WriteString(helpStyle.Render("No logs yet"))
	} else {
		end := min(m.offset+m.visibleLines(), len(m.logs))
		for _, entry := range m.logs[m.offset:end] {
			line := fmt.Sprintf("[%s] %-5s %s", entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Message)
			b.WriteString(lipgloss.NewStyle().Foreground(levelColor(entry.Level)).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	scrollInfo := ""
	if len(m.logs) > m.visibleLines() {
		end := min(m.offset+m.visibleLines(), len(m.logs))
		scrollInfo = fmt.Sprintf(" | Showing %d-%d of %d", m.offset+1, end, len(m.logs))
	}
	b.WriteString(helpStyle.Render("j/k: Scroll | g/G: Top/Bottom | e: Errors only | r: Refresh | Esc: Close" + scrollInfo))

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2).
		Width(width)

	return box.Render(b.String())
}
