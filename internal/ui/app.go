package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/config"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
	"github.com/lucasgio/gam/internal/ui/components"
	"github.com/lucasgio/gam/internal/ui/views"
)

type ViewState int

const (
	ViewAccounts ViewState = iota
	ViewStatus
	ViewConfig
)

func (s ViewState) String() string {
	switch s {
	case ViewStatus:
		return "Status"
	case ViewConfig:
		return "SSH Config"
	default:
		return "Accounts"
	}
}

type Model struct {
	state           ViewState
	width           int
	height          int
	showHelp        bool
	topBar          *components.TopBarModel
	statusBar       *components.StatusBarModel
	commandBar      *components.CommandBarModel
	accountsView    *views.AccountsViewModel
	statusView      *views.StatusViewModel
	configView      *views.SSHConfigViewModel
	logsView        *views.LogsViewModel
	service         account.Service
	ctx             context.Context
	commandRegistry *CommandRegistry
}

func NewModel(service account.Service, sshDir string) Model {
	m := Model{
		state:           ViewAccounts,
		topBar:          components.NewTopBar(),
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		accountsView:    views.NewAccountsView(),
		statusView:      views.NewStatusView(),
		configView:      views.NewSSHConfigView(),
		logsView:        views.NewLogsView(),
		service:         service,
		ctx:             context.Background(),
		commandRegistry: NewCommandRegistry(),
	}
	m.topBar.SetSSHDir(sshDir)
	m.updateShortcuts()
	return m
}

// Run starts the full screen interface and blocks until the user quits.
func Run(service account.Service, settings *config.Settings) error {
	logger.Log("UI: Starting interactive session")
	p := tea.NewProgram(NewModel(service, settings.SSHDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadAccounts()
}

func (m Model) isInInputMode() bool {
	return m.commandBar.IsActive() || m.logsView.IsActive() || m.accountsView.IsEditing()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.accountsView.SetSize(msg.Width, msg.Height-8)
		m.statusView.SetSize(msg.Width, msg.Height-8)
		m.configView.SetSize(msg.Width, msg.Height-8)
		m.logsView.SetSize(msg.Width, msg.Height-8)

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}

		if m.isInInputMode() {
			return m.handleInputKey(msg)
		}

		if m.showHelp {
			m.showHelp = false
			if key == "esc" || key == "q" || key == "?" {
				return m, nil
			}
		}

		newModel, cmd, handled := m.commandRegistry.HandleKey(m, key)
		if handled {
			return newModel, cmd
		}

	case AccountsLoadedMsg:
		m.accountsView.SetAccounts(msg.accounts)
		m.applyAccountsToTopBar(msg.accounts, msg.dangling)
		m.updateShortcuts()
		return m, nil

	case StatusLoadedMsg:
		m.statusView.SetReport(msg.report)
		if msg.report.Dangling {
			m.statusBar.Error(domain.ErrDanglingActiveReference.Error())
		}
		return m, nil

	case ConfigLoadedMsg:
		m.configView.SetConfig(msg.config)
		return m, nil

	case AccountAddedMsg:
		m.accountsView.ExitToList()
		m.statusBar.Success(addedMessage(msg.result))
		return m, m.loadAccounts()

	case KeyExistsMsg:
		m.accountsView.AskOverwrite(msg.request)
		return m, nil

	case AddFailedMsg:
		m.accountsView.ReturnToForm(msg.err.Error())
		m.statusBar.Error(msg.err.Error())
		return m, nil

	case ErrorMsg:
		m.statusBar.Error(msg.err.Error())
		if msg.reload {
			return m, m.loadAccounts()
		}
		return m, nil

	case SuccessMsg:
		m.statusBar.Success(msg.message)
		if msg.reload {
			return m, m.loadAccounts()
		}
		return m, nil
	}

	switch m.state {
	case ViewAccounts:
		cmd = m.accountsView.Update(msg)
	case ViewConfig:
		cmd = m.configView.Update(msg)
	}

	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.commandBar.IsActive() {
		switch key {
		case "enter":
			return m.handleCommand()
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	if m.logsView.IsActive() {
		switch key {
		case "esc", "q":
			m.logsView.Deactivate()
			return m, nil
		default:
			return m, m.logsView.Update(msg)
		}
	}

	switch m.accountsView.Mode {
	case views.AccountsModeAdd:
		switch key {
		case "enter":
			return m.submitAddForm()
		case "esc":
			m.accountsView.ExitToList()
			m.statusBar.Clear()
			return m, nil
		}
		return m, m.accountsView.Update(msg)

	case views.AccountsModeConfirmDelete:
		switch key {
		case "y", "Y":
			name := m.accountsView.DeleteTarget()
			m.accountsView.ExitToList()
			return m, m.removeAccount(name)
		case "n", "N", "esc":
			m.accountsView.ExitToList()
			m.statusBar.Info("Remove cancelled")
		}
		return m, nil

	case views.AccountsModeConfirmOverwrite:
		switch key {
		case "y", "Y":
			req := m.accountsView.PendingRequest()
			if req == nil {
				m.accountsView.ExitToList()
				return m, nil
			}
			retry := *req
			retry.Overwrite = true
			return m, m.addAccount(retry)
		case "n", "N", "esc":
			m.accountsView.ReturnToForm("Key file kept. Choose another name or host.")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case m.logsView.IsActive():
		content = m.logsView.View()
	case m.showHelp:
		content = m.commandRegistry.HelpText()
	default:
		switch m.state {
		case ViewAccounts:
			content = m.accountsView.View()
		case ViewStatus:
			content = m.statusView.View()
		case ViewConfig:
			content = m.configView.View()
		}
	}

	topBar := m.topBar.View()
	if commandBar := m.commandBar.View(); commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}
	return topBar + "\n" + content + "\n" + m.statusBar.View()
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Value()
	m.commandBar.Remember(input)
	m.commandBar.Deactivate()

	parts := strings.Fields(strings.TrimPrefix(input, ":"))
	if len(parts) == 0 {
		return m, nil
	}

	logger.Log("UI: Executing command: %s %v", parts[0], parts[1:])
	return m.commandRegistry.ExecuteCommand(m, parts[0], parts[1:])
}

func (m Model) setState(state ViewState) Model {
	m.state = state
	m.topBar.SetView(state.String())
	m.updateShortcuts()
	return m
}

func (m Model) showAccounts() (Model, tea.Cmd) {
	m = m.setState(ViewAccounts)
	return m, m.loadAccounts()
}

func (m Model) showStatus(probe bool) (Model, tea.Cmd) {
	m = m.setState(ViewStatus)
	m.statusView.SetLoading()
	return m, m.loadStatus(probe)
}

func (m Model) showConfig() (Model, tea.Cmd) {
	m = m.setState(ViewConfig)
	return m, m.loadConfig()
}

func (m Model) showLogs() (Model, tea.Cmd) {
	m.logsView.Activate()
	return m, nil
}

func (m Model) navigateBack() (Model, tea.Cmd) {
	if m.state == ViewAccounts {
		return m, tea.Quit
	}
	return m.showAccounts()
}

func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	if !m.accountsView.ValidateForm() {
		m.statusBar.Error(m.accountsView.FormError())
		return m, nil
	}
	m.statusBar.Info("Generating key...")
	return m, m.addAccount(m.accountsView.AddRequest())
}

func (m Model) addAccount(req account.AddRequest) tea.Cmd {
	logger.Log("UI: Adding account %s for %s", req.Name, req.Host)
	return func() tea.Msg {
		result, err := m.service.Add(m.ctx, req)
		switch {
		case errors.Is(err, domain.ErrKeyExists):
			return KeyExistsMsg{request: req}
		case err != nil:
			return AddFailedMsg{err: err}
		}
		return AccountAddedMsg{result: result}
	}
}

func (m Model) switchSelected() (Model, tea.Cmd) {
	selected := m.accountsView.GetSelected()
	if selected == nil {
		return m, nil
	}
	name := selected.Name
	return m, func() tea.Msg {
		result, err := m.service.Switch(name)
		if err != nil {
			return ErrorMsg{err: err}
		}
		text := fmt.Sprintf("Switched %s to %s", result.Account.Host, result.Account.Name)
		if result.Repaired {
			text += " (replaced an unterminated active block)"
		}
		return SuccessMsg{message: text, reload: true}
	}
}

func (m Model) confirmDelete() (Model, tea.Cmd) {
	selected := m.accountsView.GetSelected()
	if selected == nil {
		return m, nil
	}
	m.accountsView.AskDelete(selected.Name)
	return m, nil
}

func (m Model) removeAccount(name string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.Remove(m.ctx, name)
		if err != nil {
			return ErrorMsg{err: err, reload: true}
		}
		text := fmt.Sprintf("Removed %s", result.Account.Name)
		if result.WasActive {
			text += "; no account is active now"
		}
		if len(result.Warnings) > 0 {
			return ErrorMsg{err: fmt.Errorf("%s with warnings: %s", text, strings.Join(result.Warnings, "; ")), reload: true}
		}
		return SuccessMsg{message: text, reload: true}
	}
}

func (m Model) publishSelected() (Model, tea.Cmd) {
	selected := m.accountsView.GetSelected()
	if selected == nil {
		return m, nil
	}
	name := selected.Name
	m.statusBar.Info(fmt.Sprintf("Publishing key for %s...", name))
	return m, func() tea.Msg {
		key, err := m.service.Publish(m.ctx, name, "")
		if err != nil {
			return ErrorMsg{err: err}
		}
		if key.AlreadyPresent {
			return SuccessMsg{message: fmt.Sprintf("Key for %s is already on GitHub (%s)", name, key.Title)}
		}
		return SuccessMsg{message: fmt.Sprintf("Published key %q", key.Title)}
	}
}

func (m Model) loadAccounts() tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.service.List()
		if err != nil {
			return ErrorMsg{err: err}
		}
		msg := AccountsLoadedMsg{accounts: accounts}
		if report, err := m.service.Status(m.ctx, "", false); err == nil && report.Dangling {
			msg.dangling = report.DanglingName
		}
		return msg
	}
}

func (m Model) loadStatus(probe bool) tea.Cmd {
	return func() tea.Msg {
		report, err := m.service.Status(m.ctx, "", probe)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return StatusLoadedMsg{report: report}
	}
}

func (m Model) loadConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.service.ViewConfig()
		if err != nil {
			return ErrorMsg{err: err}
		}
		return ConfigLoadedMsg{config: cfg}
	}
}

func (m Model) applyAccountsToTopBar(accounts []domain.AccountView, dangling string) {
	hosts := make(map[string]bool)
	for _, acc := range accounts {
		hosts[acc.Host] = true
	}
	m.topBar.SetCounts(len(accounts), len(hosts))

	switch active := m.accountsView.Active(); {
	case active != nil:
		m.topBar.SetActiveAccount(active.Name, active.Host)
	case dangling != "":
		m.topBar.SetDangling(dangling)
	default:
		m.topBar.SetActiveAccount("", "")
	}
}

func (m Model) updateShortcuts() {
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(m.state))
}

func addedMessage(r *account.AddResult) string {
	text := fmt.Sprintf("Added %s. Clone with git@%s:org/repo.git", r.Account.Name, r.Alias)
	if !r.AgentLoaded {
		text += " (key not loaded into ssh-agent)"
	}
	return text
}

type AccountsLoadedMsg struct {
	accounts []domain.AccountView
	dangling string
}

type StatusLoadedMsg struct {
	report *account.StatusReport
}

type ConfigLoadedMsg struct {
	config *account.ConfigView
}

type AccountAddedMsg struct {
	result *account.AddResult
}

type KeyExistsMsg struct {
	request account.AddRequest
}

type AddFailedMsg struct {
	err error
}

type ErrorMsg struct {
	err    error
	reload bool
}

type SuccessMsg struct {
	message string
	reload  bool
}
