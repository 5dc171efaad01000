package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type MessageKind int

const (
	KindInfo MessageKind = iota
	KindSuccess
	KindError
)

var kindBackground = map[MessageKind]lipgloss.Color{
	KindInfo:    lipgloss.Color("#374151"),
	KindSuccess: lipgloss.Color("#065F46"),
	KindError:   lipgloss.Color("#991B1B"),
}

type StatusBarModel struct {
	width   int
	message string
	kind    MessageKind
}

func NewStatusBar() *StatusBarModel {
	return &StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) Info(message string) { m.set(message, KindInfo) }
func (m *StatusBarModel) Success(message string) { m.set(message, KindSuccess) }
func (m *StatusBarModel) Error(message string) { m.set(message, KindError) }

func (m *StatusBarModel) set(message string, kind MessageKind) {
	// Output from ssh tools can span lines; the bar is a single row.
	m.message = strings.Join(strings.Fields(message), " ")
	m.kind = kind
}

func (m *StatusBarModel) Clear() {
	m.set("", KindInfo)
}

func (m *StatusBarModel) Message() (string, MessageKind) {
	return m.message, m.kind
}

func (m *StatusBarModel) View() string {
	content := " " + m.message

	if w := lipgloss.Width(content); m.width > 3 && w > m.width {
		runes := []rune(content)
		if len(runes) > m.width-3 {
			runes = runes[:m.width-3]
		}
		content = string(runes) + "..."
	} else if w < m.width {
		content += strings.Repeat(" ", m.width-w)
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(kindBackground[m.kind]).
		Width(m.width).
		Render(content)
}
