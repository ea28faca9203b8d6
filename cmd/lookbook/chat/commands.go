package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lookbook/cmd/lookbook/ui"
	"lookbook/internal/config"
	"lookbook/internal/logging"
)

const helpText = "/new · /history · /guide · /profile · /theme light|dark · /fontsize small|medium|large · /quit"

// parseCommand splits a slash command into its name and arguments.
func parseCommand(input string) (name string, args []string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, "/"))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	name, args, ok := parseCommand(input)
	if !ok {
		return m, nil
	}
	logging.Get(logging.CategoryUI).Debug("Command: /%s %v", name, args)

	switch name {
	case "new":
		m.mgr.StartNewSession()
		m.viewMode = ChatView
		m.status = "Started a new conversation"
		m.refreshTranscript()

	case "history":
		items := m.historyItems()
		if len(items) == 0 {
			m.status = "No chat history yet"
			return m, nil
		}
		m.list.SetItems(items)
		m.list.Select(0)
		m.viewMode = HistoryView

	case "guide":
		m.viewMode = GuideView

	case "profile":
		m.startProfileWizard(false)

	case "theme":
		return m.setTheme(args)

	case "fontsize":
		return m.setFontSize(args)

	case "help":
		m.status = helpText

	case "quit", "exit":
		return m, tea.Quit

	default:
		m.status = fmt.Sprintf("Unknown command /%s (try /help)", name)
	}
	return m, nil
}

func (m Model) setTheme(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 || (args[0] != "light" && args[0] != "dark") {
		m.status = "Usage: /theme light|dark"
		return m, nil
	}

	m.cfg.Theme = args[0]
	m.styles = ui.NewStyles(ui.ThemeByName(m.cfg.Theme))
	m.spinner.Style = m.styles.Spinner
	m.saveConfig()
	m.status = fmt.Sprintf("Theme set to %s", args[0])
	m.refreshTranscript()
	return m, nil
}

func (m Model) setFontSize(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 1 || (args[0] != "small" && args[0] != "medium" && args[0] != "large") {
		m.status = "Usage: /fontsize small|medium|large"
		return m, nil
	}

	m.cfg.FontSize = args[0]
	m.saveConfig()
	m.status = fmt.Sprintf("Font size set to %s", args[0])
	m.refreshTranscript()
	return m, nil
}

func (m *Model) saveConfig() {
	if err := m.cfg.Save(config.DefaultUserConfigPath()); err != nil {
		logging.Get(logging.CategoryUI).Error("Save config: %v", err)
		m.status = "Could not save settings"
	}
}
