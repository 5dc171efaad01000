package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasgio/gam/internal/logger"
)

type KeyHandler func(m Model) (Model, tea.Cmd)

type CommandHandler func(m Model, args []string) (Model, tea.Cmd)

type KeyBinding struct {
	Key         string
	Description string
	// States limits the binding to these views. Empty means every view.
	States  []ViewState
	Handler KeyHandler
}

func (b KeyBinding) activeIn(state ViewState) bool {
	return len(b.States) == 0 || slices.Contains(b.States, state)
}

type Command struct {
	Name        string
	Aliases     []string
	Description string
	Handler     CommandHandler
}

type CommandRegistry struct {
	bindings []KeyBinding
	commands []*Command
	byName   map[string]*Command
}

func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{byName: make(map[string]*Command)}
	r.registerKeys()
	r.registerCommands()
	return r
}

func (r *CommandRegistry) bind(key, description string, handler KeyHandler, states ...ViewState) {
	r.bindings = append(r.bindings, KeyBinding{
		Key:         key,
		Description: description,
		States:      states,
		Handler:     handler,
	})
}

func (r *CommandRegistry) register(cmd *Command) {
	r.commands = append(r.commands, cmd)
	r.byName[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.byName[alias] = cmd
	}
}

func (r *CommandRegistry) registerKeys() {
	r.bind("enter", "switch", Model.switchSelected, ViewAccounts)
	r.bind("a", "add", handleAddKey, ViewAccounts)
	r.bind("d", "delete", Model.confirmDelete, ViewAccounts)
	r.bind("p", "publish", Model.publishSelected, ViewAccounts)
	r.bind("s", "status", func(m Model) (Model, tea.Cmd) { return m.showStatus(true) }, ViewAccounts)
	r.bind("r", "retest", func(m Model) (Model, tea.Cmd) { return m.showStatus(true) }, ViewStatus)
	r.bind("c", "ssh config", Model.showConfig, ViewAccounts, ViewStatus)
	r.bind("L", "logs", Model.showLogs)
	r.bind(":", "command", handleCommandKey)
	r.bind("?", "help", handleHelpKey)
	r.bind("esc", "back", Model.navigateBack, ViewStatus, ViewConfig)
	r.bind("q", "quit", Model.navigateBack)
}

func (r *CommandRegistry) registerCommands() {
	r.register(&Command{
		Name:        "q",
		Aliases:     []string{"quit", "exit"},
		Description: "Quit",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			return m, tea.Quit
		},
	})
	r.register(&Command{
		Name:        "accounts",
		Aliases:     []string{"a", "list"},
		Description: "Show the account list",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			return m.showAccounts()
		},
	})
	r.register(&Command{
		Name:        "status",
		Aliases:     []string{"s"},
		Description: "Test the active account (status noprobe skips the connection)",
		Handler: func(m Model, args []string) (Model, tea.Cmd) {
			probe := !(len(args) > 0 && args[0] == "noprobe")
			return m.showStatus(probe)
		},
	})
	r.register(&Command{
		Name:        "config",
		Aliases:     []string{"c"},
		Description: "View the ssh config file",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			return m.showConfig()
		},
	})
	r.register(&Command{
		Name:        "logs",
		Aliases:     []string{"l"},
		Description: "Show session logs",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			return m.showLogs()
		},
	})
	r.register(&Command{
		Name:        "help",
		Aliases:     []string{"h"},
		Description: "List commands and keys",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			m.showHelp = true
			return m, nil
		},
	})
}

func handleAddKey(m Model) (Model, tea.Cmd) {
	m.accountsView.EnterAddMode()
	m.statusBar.Clear()
	return m, nil
}

func handleCommandKey(m Model) (Model, tea.Cmd) {
	m.commandBar.Activate()
	return m, nil
}

func handleHelpKey(m Model) (Model, tea.Cmd) {
	m.showHelp = true
	return m, nil
}

// HandleKey runs the first binding for key that applies to the current view.
func (r *CommandRegistry) HandleKey(m Model, key string) (Model, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Key == key && b.activeIn(m.state) {
			newModel, cmd := b.Handler(m)
			return newModel, cmd, true
		}
	}
	return m, nil, false
}

func (r *CommandRegistry) ExecuteCommand(m Model, name string, args []string) (tea.Model, tea.Cmd) {
	cmd, ok := r.byName[name]
	if !ok {
		logger.LogWarn("UI: Unknown command: %s", name)
		m.statusBar.Error(fmt.Sprintf("Unknown command: %s (try :help)", name))
		return m, nil
	}
	return cmd.Handler(m, args)
}

func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var shortcuts []string
	for _, b := range r.bindings {
		if !b.activeIn(state) {
			continue
		}
		// A view specific binding shadows a global one on the same key.
		if len(b.States) == 0 && r.shadowed(b.Key, state) {
			continue
		}
		shortcuts = append(shortcuts, fmt.Sprintf("<%s> %s", b.Key, b.Description))
	}
	return shortcuts
}

func (r *CommandRegistry) shadowed(key string, state ViewState) bool {
	for _, b := range r.bindings {
		if b.Key == key && len(b.States) > 0 && slices.Contains(b.States, state) {
			return true
		}
	}
	return false
}

func (r *CommandRegistry) HelpText() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Commands"))
	b.WriteString("\n")
	for _, cmd := range r.commands {
		names := ":" + cmd.Name
		if len(cmd.Aliases) > 0 {
			names += ", :" + strings.Join(cmd.Aliases, ", :")
		}
		b.WriteString(fmt.Sprintf("  %-28s %s\n", ShortcutKeyStyle.Render(names), cmd.Description))
	}

	b.WriteString(TitleStyle.Render("Keys"))
	b.WriteString("\n")
	seen := make(map[string]bool)
	for _, binding := range r.bindings {
		if seen[binding.Key+binding.Description] {
			continue
		}
		seen[binding.Key+binding.Description] = true
		b.WriteString(fmt.Sprintf("  %-10s %s\n", ShortcutKeyStyle.Render(binding.Key), binding.Description))
	}
	b.WriteString(HelpStyle.Render("Press any key to close"))
	return b.String()
}
