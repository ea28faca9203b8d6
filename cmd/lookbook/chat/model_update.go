package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lookbook/cmd/lookbook/ui"
	"lookbook/internal/logging"
	"lookbook/internal/session"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case outfitResultMsg:
		m.rec.Settle(msg.resp, msg.err)
		m.isLoading = false
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.viewMode != ChatView {
			m.viewMode = ChatView
			m.refreshTranscript()
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.viewMode {
	case HistoryView:
		return m.handleHistoryKey(msg)
	case GuideView:
		return m.handleGuideKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := m.list.SelectedItem().(historyItem)
		if ok {
			m.mgr.LoadSession(item.id)
			m.viewMode = ChatView
			m.status = "Continuing as a new conversation"
			m.refreshTranscript()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleGuideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.guide.Prev()
	case "right", "l", "tab", " ":
		m.guide.Next()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && !msg.Alt {
		if m.isLoading {
			return m, nil
		}
		return m.handleEnter()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// handleEnter dispatches the submitted input: wizard answers, /commands, or
// a generation request.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := m.textarea.Value()
	trimmed := strings.TrimSpace(input)

	if m.inputMode != InputModeNormal {
		return m.handleWizardInput(trimmed)
	}
	if strings.HasPrefix(trimmed, "/") {
		m.textarea.Reset()
		return m.handleCommand(trimmed)
	}
	return m.startSend(input)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentWidth := ui.ContentWidth(m.cfg.FontSize, m.width)
	headerHeight := 1
	footerHeight := 2
	inputHeight := m.textarea.Height() + 1
	viewportHeight := m.height - headerHeight - footerHeight - inputHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}

	m.textarea.SetWidth(m.width - 4)
	m.list.SetSize(m.width-4, viewportHeight)

	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(contentWidth-4),
	); err == nil {
		m.renderer = r
	} else {
		logging.Get(logging.CategoryUI).Warn("Markdown renderer unavailable: %v", err)
	}

	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if m.viewMode == HistoryView {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// refreshTranscript re-renders the conversation into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

// historyItems flattens the grouped archive into list items, keeping the
// group label on each row.
func (m *Model) historyItems() []list.Item {
	groups := session.GroupByDate(m.mgr.History(), time.Now())
	var items []list.Item
	for _, g := range groups {
		for _, e := range g.Entries {
			items = append(items, historyItem{
				id:    e.ID,
				group: g.Label,
				title: e.Title,
				when:  time.UnixMilli(e.Timestamp).Format("Jan 2, 15:04"),
			})
		}
	}
	return items
}
