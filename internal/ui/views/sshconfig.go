package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasgio/gam/internal/account"
)

type SSHConfigViewModel struct {
	viewport viewport.Model
	path     string
	exists   bool
	loaded   bool
	width    int
	height   int
}

func NewSSHConfigView() *SSHConfigViewModel {
	return &SSHConfigViewModel{
		viewport: viewport.New(0, 0),
	}
}

func (m *SSHConfigViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 12
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m *SSHConfigViewModel) SetConfig(cfg *account.ConfigView) {
	m.loaded = true
	m.path = cfg.Path
	m.exists = cfg.Exists
	if !cfg.Exists {
		m.viewport.SetContent(helpStyle.Render("The file does not exist yet."))
	} else if cfg.Content == "" {
		m.viewport.SetContent(helpStyle.Render("The file is empty."))
	} else {
		m.viewport.SetContent(cfg.Content)
	}
	m.viewport.GotoTop()
}

func (m *SSHConfigViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *SSHConfigViewModel) View() string {
	if !m.loaded {
		return helpStyle.Render("Loading ssh config...")
	}

	title := formTitleStyle.Render(fmt.Sprintf("SSH Config: %s", m.path))
	scroll := helpStyle.Render(fmt.Sprintf("j/k: Scroll | Esc/q: Back | %3.f%%", m.viewport.ScrollPercent()*100))
	return title + "\n\n" + m.viewport.View() + "\n\n" + scroll
}
