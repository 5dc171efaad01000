package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasgio/gam/internal/ui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, m Model, input string) Model {
	t.Helper()
	m, _ = press(t, m, ":")
	require.True(t, m.commandBar.IsActive())
	m = typeText(t, m, input)
	m, cmd := press(t, m, "enter")
	return drain(t, m, cmd)
}

func TestCommand_Config(t *testing.T) {
	svc := &mockService{}
	m := newTestModel(t, svc)

	m = runCommand(t, m, "config")

	assert.Equal(t, ViewConfig, m.state)
	assert.False(t, m.commandBar.IsActive())
	assert.Contains(t, m.View(), "/home/me/.ssh/config")
	assert.Equal(t, []string{":config"}, m.commandBar.History())
}

func TestCommand_StatusNoProbe(t *testing.T) {
	svc := &mockService{}
	m := newTestModel(t, svc)

	m = runCommand(t, m, "status noprobe")

	assert.Equal(t, ViewStatus, m.state)
	assert.Equal(t, []bool{false, false}, svc.probes)
	assert.Contains(t, m.View(), "No active account")
}

func TestCommand_AccountsReturnsToList(t *testing.T) {
	m := newTestModel(t, &mockService{})
	m = runCommand(t, m, "config")
	m = runCommand(t, m, "accounts")

	assert.Equal(t, ViewAccounts, m.state)
}

func TestCommand_Logs(t *testing.T) {
	m := newTestModel(t, &mockService{})
	m = runCommand(t, m, "logs")

	assert.True(t, m.logsView.IsActive())
}

func TestCommand_Help(t *testing.T) {
	m := newTestModel(t, &mockService{})
	m = runCommand(t, m, "help")

	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), ":accounts")

	m, _ = press(t, m, "esc")
	assert.False(t, m.showHelp)
}

func TestCommand_Unknown(t *testing.T) {
	m := newTestModel(t, &mockService{})
	m = runCommand(t, m, "bogus")

	msg, kind := m.statusBar.Message()
	assert.Equal(t, components.KindError, kind)
	assert.Contains(t, msg, "Unknown command: bogus")
}

func TestCommand_Quit(t *testing.T) {
	m := newTestModel(t, &mockService{})
	m, _ = press(t, m, ":")
	m = typeText(t, m, "q")
	_, cmd := press(t, m, "enter")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestContextualShortcuts(t *testing.T) {
	r := NewCommandRegistry()

	accounts := r.GetContextualShortcuts(ViewAccounts)
	assert.Contains(t, accounts, "<enter> switch")
	assert.Contains(t, accounts, "<q> quit")
	assert.NotContains(t, accounts, "<r> retest")
	assert.NotContains(t, accounts, "<esc> back")

	status := r.GetContextualShortcuts(ViewStatus)
	assert.Contains(t, status, "<r> retest")
	assert.NotContains(t, status, "<a> add")
}

func TestHandleKey_UnboundKeyNotHandled(t *testing.T) {
	r := NewCommandRegistry()
	m := NewModel(&mockService{}, "")

	_, _, handled := r.HandleKey(m, "z")
	assert.False(t, handled)

	_, _, handled = r.HandleKey(m, "r")
	assert.False(t, handled, "retest only applies to the status view")
}
