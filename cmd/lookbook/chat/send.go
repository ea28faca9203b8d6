package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/outfit"
	"lookbook/internal/session"
)

// generateTimeout bounds one request to the outfit service. Image generation
// on the backend can take a while, so this is generous.
const generateTimeout = 3 * time.Minute

// startSend runs the optimistic phase and, when a request was started,
// returns the command that performs the network call off the update loop.
func (m Model) startSend(input string) (tea.Model, tea.Cmd) {
	state, req := m.rec.Begin(input)
	switch state {
	case session.BeginRejected:
		return m, nil

	case session.BeginBlocked:
		m.textarea.Reset()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.textarea.Reset()
	m.isLoading = true
	m.status = ""
	m.refreshTranscript()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, generateCmd(m.client, req))
}

// generateCmd issues the request and delivers the result back to Update.
// Settle must not run here: transcript state belongs to the update loop.
func generateCmd(client session.Generator, req outfit.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		resp, err := client.Generate(ctx, req)
		return outfitResultMsg{resp: resp, err: err}
	}
}
