package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/domain"
)

type StatusViewModel struct {
	report  *account.StatusReport
	loading bool
	width   int
	height  int
}

func NewStatusView() *StatusViewModel {
	return &StatusViewModel{}
}

func (m *StatusViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *StatusViewModel) SetLoading() {
	m.loading = true
	m.report = nil
}

func (m *StatusViewModel) SetReport(report *account.StatusReport) {
	m.loading = false
	m.report = report
}

func (m *StatusViewModel) Report() *account.StatusReport {
	return m.report
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

func (m *StatusViewModel) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Connection Status"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(helpStyle.Render("Testing connection..."))
	case m.report == nil:
		b.WriteString(helpStyle.Render("No status yet"))
	case m.report.Dangling:
		b.WriteString(warnStyle.Render(fmt.Sprintf("Active account %q no longer exists.", m.report.DanglingName)))
		b.WriteString("\n")
		b.WriteString("Switch to another account to repair the selection.")
	case m.report.NoActive:
		b.WriteString(warnStyle.Render("No active account."))
	case m.report.Account != nil:
		m.writeAccount(&b, m.report)
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("r: Retest | Esc/q: Back"))
	return b.String()
}

func (m *StatusViewModel) writeAccount(b *strings.Builder, r *account.StatusReport) {
	acc := r.Account
	field := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	name := acc.Name
	if r.Active {
		name += okStyle.Render(" (active)")
	}
	field("Account:", name)
	field("Email:", acc.Email)
	field("Host:", acc.Host)
	field("Alias:", acc.Alias())
	if acc.Description != "" {
		field("Note:", acc.Description)
	}

	if !r.Probed {
		return
	}

	b.WriteString("\n")
	field("Endpoint:", r.Endpoint)
	switch r.Outcome {
	case domain.ProbeAuthenticated:
		field("Result:", okStyle.Render("authenticated"))
	case domain.ProbePermissionDenied:
		field("Result:", badStyle.Render("permission denied"))
	default:
		field("Result:", warnStyle.Render("unexpected response"))
	}
	if out := strings.TrimSpace(r.ProbeOutput); out != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(out))
	}
}
