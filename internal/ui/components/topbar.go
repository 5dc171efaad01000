package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width         int
	activeAccount string
	activeHost    string
	dangling      bool
	accountCount  int
	hostCount     int
	sshDir        string
	currentView   string
	shortcuts     []string
}

var (
	titleStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleOrangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	warnValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

const (
	contextRows     = 4
	contextColWidth = 40
	colMargin       = 4
)

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetActiveAccount(name, host string) {
	m.activeAccount = name
	m.activeHost = host
	m.dangling = false
}

// SetDangling marks the active selection as pointing at a missing account.
func (m *TopBarModel) SetDangling(name string) {
	m.activeAccount = name
	m.activeHost = ""
	m.dangling = true
}

func (m *TopBarModel) SetCounts(accounts, hosts int) {
	m.accountCount = accounts
	m.hostCount = hosts
}

func (m *TopBarModel) SetSSHDir(dir string) {
	m.sshDir = dir
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	contextLines := m.buildContextInfo()
	columns, widths := m.buildShortcutColumns()

	rows := []string{titleOrangeStyle.Render("gam"), ""}
	for i := 0; i < contextRows; i++ {
		var line string
		if i < len(contextLines) {
			line = contextLines[i]
		}
		line += strings.Repeat(" ", max(1, contextColWidth-lipgloss.Width(line)))

		for c, column := range columns {
			if i >= len(column) {
				break
			}
			if c > 0 {
				prev := columns[c-1][i]
				line += strings.Repeat(" ", widths[c-1]-lipgloss.Width(prev)+colMargin)
			}
			line += column[i]
		}
		rows = append(rows, line)
	}

	return titleStyle.Width(m.width).Render(strings.Join(rows, "\n"))
}

func (m *TopBarModel) buildContextInfo() []string {
	active := valueWhiteStyle.Render("none")
	switch {
	case m.dangling:
		active = warnValueStyle.Render(truncate(m.activeAccount, 25) + " (missing)")
	case m.activeAccount != "":
		active = valueWhiteStyle.Render(truncate(fmt.Sprintf("%s (%s)", m.activeAccount, m.activeHost), 35))
	}

	view := m.currentView
	if view == "" {
		view = "Accounts"
	}

	return []string{
		"🔑 " + titleOrangeStyle.Render("Active: ") + active,
		"👥 " + titleOrangeStyle.Render("Accounts: ") +
			valueWhiteStyle.Render(fmt.Sprintf("%d", m.accountCount)) +
			descGrayStyle.Render(fmt.Sprintf(" on %d hosts", m.hostCount)),
		"📁 " + titleOrangeStyle.Render("SSH: ") + valueWhiteStyle.Render(truncate(m.sshDir, 35)),
		"🎯 " + titleOrangeStyle.Render("View: ") + valueWhiteStyle.Render(view),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// buildShortcutColumns lays shortcuts out top to bottom in columns of
// contextRows entries, returning each column's widest entry.
func (m *TopBarModel) buildShortcutColumns() ([][]string, []int) {
	var columns [][]string
	var widths []int

	n := 0
	for _, shortcut := range m.shortcuts {
		key, desc, ok := strings.Cut(shortcut, ">")
		if !ok {
			continue
		}
		key = strings.TrimPrefix(key, "<")
		line := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(strings.TrimSpace(desc))

		if n%contextRows == 0 {
			columns = append(columns, nil)
			widths = append(widths, 0)
		}
		c := len(columns) - 1
		columns[c] = append(columns[c], line)
		widths[c] = max(widths[c], lipgloss.Width(line))
		n++
	}

	return columns, widths
}
