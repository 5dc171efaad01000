package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/domain"
)

const DefaultHost = "github.com"

type AccountItem struct {
	view domain.AccountView
}

func (i AccountItem) FilterValue() string { return i.view.Name }
func (i AccountItem) Title() string {
	indicator := " "
	if i.view.Active {
		indicator = "●"
	}
	return fmt.Sprintf("%s %s (%s)", indicator, i.view.Name, i.view.Host)
}
func (i AccountItem) Description() string {
	if i.view.Description != "" {
		return fmt.Sprintf("%s · %s · git@%s", i.view.Email, i.view.Description, i.view.Alias)
	}
	return fmt.Sprintf("%s · git@%s", i.view.Email, i.view.Alias)
}

type AccountsMode int

const (
	AccountsModeList AccountsMode = iota
	AccountsModeAdd
	AccountsModeConfirmDelete
	AccountsModeConfirmOverwrite
)

const (
	fieldName = iota
	fieldEmail
	fieldHost
	fieldDescription
	fieldPassphrase
	fieldCount
)

type AccountsViewModel struct {
	list       list.Model
	Mode       AccountsMode
	inputs     []textinput.Model
	inputFocus int
	formError  string
	// pending is the add request waiting for an overwrite answer.
	pending *account.AddRequest
	// target is the account waiting for a delete answer.
	target string
	width  int
	height int
}

func NewAccountsView() *AccountsViewModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "SSH Accounts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 100
		inputs[i] = ti
	}
	inputs[fieldName].Placeholder = "work"
	inputs[fieldName].CharLimit = 50
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldHost].Placeholder = DefaultHost
	inputs[fieldDescription].Placeholder = "Optional"
	inputs[fieldPassphrase].Placeholder = "Optional"
	inputs[fieldPassphrase].EchoMode = textinput.EchoPassword
	inputs[fieldPassphrase].EchoCharacter = '•'

	return &AccountsViewModel{
		list:   l,
		Mode:   AccountsModeList,
		inputs: inputs,
	}
}

func (m *AccountsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-5)
}

func (m *AccountsViewModel) SetAccounts(accounts []domain.AccountView) {
	items := make([]list.Item, len(accounts))
	for i, acc := range accounts {
		items[i] = AccountItem{view: acc}
	}
	m.list.SetItems(items)
}

func (m *AccountsViewModel) Count() int {
	return len(m.list.Items())
}

func (m *AccountsViewModel) Active() *domain.AccountView {
	for _, item := range m.list.Items() {
		if ai, ok := item.(AccountItem); ok && ai.view.Active {
			v := ai.view
			return &v
		}
	}
	return nil
}

func (m *AccountsViewModel) GetSelected() *domain.AccountView {
	item := m.list.SelectedItem()
	if item == nil {
		return nil
	}
	ai, ok := item.(AccountItem)
	if !ok {
		return nil
	}
	return &ai.view
}

func (m *AccountsViewModel) EnterAddMode() {
	m.Mode = AccountsModeAdd
	m.formError = ""
	m.pending = nil
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[fieldHost].SetValue(DefaultHost)
	m.inputFocus = fieldName
	m.inputs[fieldName].Focus()
}

// ReturnToForm reopens the add form with its values intact.
func (m *AccountsViewModel) ReturnToForm(errText string) {
	m.Mode = AccountsModeAdd
	m.formError = errText
	m.pending = nil
}

func (m *AccountsViewModel) ExitToList() {
	m.Mode = AccountsModeList
	m.formError = ""
	m.pending = nil
	m.target = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *AccountsViewModel) AskDelete(name string) {
	m.Mode = AccountsModeConfirmDelete
	m.target = name
}

func (m *AccountsViewModel) DeleteTarget() string {
	return m.target
}

func (m *AccountsViewModel) AskOverwrite(req account.AddRequest) {
	m.Mode = AccountsModeConfirmOverwrite
	m.pending = &req
}

func (m *AccountsViewModel) PendingRequest() *account.AddRequest {
	return m.pending
}

func (m *AccountsViewModel) IsEditing() bool {
	return m.Mode != AccountsModeList
}

// AddRequest builds a request from the form. An empty host falls back to
// the default.
func (m *AccountsViewModel) AddRequest() account.AddRequest {
	host := strings.TrimSpace(m.inputs[fieldHost].Value())
	if host == "" {
		host = DefaultHost
	}
	return account.AddRequest{
		Name:        strings.TrimSpace(m.inputs[fieldName].Value()),
		Email:       strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Host:        host,
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Passphrase:  m.inputs[fieldPassphrase].Value(),
		WriteConfig: true,
	}
}

// ValidateForm checks the form and keeps the error for display.
func (m *AccountsViewModel) ValidateForm() bool {
	if err := m.AddRequest().Validate(); err != nil {
		m.formError = err.Error()
		return false
	}
	m.formError = ""
	return true
}

func (m *AccountsViewModel) FormError() string {
	return m.formError
}

func (m *AccountsViewModel) Update(msg tea.Msg) tea.Cmd {
	if m.Mode == AccountsModeAdd {
		return m.updateAddMode(msg)
	}
	if m.Mode != AccountsModeList {
		return nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *AccountsViewModel) updateAddMode(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.inputFocus], cmd = m.inputs[m.inputFocus].Update(msg)
	return cmd
}

func (m *AccountsViewModel) moveFocus(delta int) {
	m.inputs[m.inputFocus].Blur()
	m.inputFocus = (m.inputFocus + delta + fieldCount) % fieldCount
	m.inputs[m.inputFocus].Focus()
}

func (m *AccountsViewModel) View() string {
	switch m.Mode {
	case AccountsModeAdd:
		return m.viewAddMode()
	case AccountsModeConfirmDelete:
		return m.viewConfirm(fmt.Sprintf("Remove account %q?", m.target),
			"Its key files, agent identity and ssh config entries are deleted.")
	case AccountsModeConfirmOverwrite:
		name := ""
		if m.pending != nil {
			name = domain.KeyFileName(m.pending.Name, m.pending.Host)
		}
		return m.viewConfirm(fmt.Sprintf("Key file %s already exists. Overwrite?", name),
			"The existing key pair is replaced by a new one.")
	}
	return m.viewListMode()
}

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true)
	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

func (m *AccountsViewModel) viewListMode() string {
	if len(m.list.Items()) == 0 {
		empty := helpStyle.Render("No accounts yet. Press a to add one.")
		return formTitleStyle.Render("SSH Accounts") + "\n\n" + empty
	}
	help := helpStyle.Render("\nEnter: Switch | a: Add | d: Delete | s: Status | p: Publish | q: Quit")
	return m.list.View() + help
}

func (m *AccountsViewModel) viewAddMode() string {
	var b strings.Builder

	b.WriteString(formTitleStyle.Render("Add SSH Account"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name:", "Email:", "Host:", "Description:", "Passphrase:"}
	for i, label := range labels {
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[i].View() + "\n\n")
	}

	if m.formError != "" {
		b.WriteString(formErrorStyle.Render(m.formError))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("Tab: Next | Shift+Tab: Previous | Enter: Save | Esc: Cancel"))
	return b.String()
}

func (m *AccountsViewModel) viewConfirm(question, detail string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2)

	body := formTitleStyle.Render(question) + "\n\n" +
		detail + "\n\n" +
		helpStyle.Render("y: Yes | n/Esc: No")
	return box.Render(body)
}
