package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/logging"
	"lookbook/internal/session"
)

// startProfileWizard switches the input into profile setup. firstRun changes
// the prompt wording; the flow is the same either way.
func (m *Model) startProfileWizard(firstRun bool) {
	m.inputMode = InputModeProfileName
	m.pendingName = ""
	m.viewMode = ChatView
	m.textarea.Reset()
	m.textarea.Placeholder = "Your name..."
	if firstRun {
		m.status = "Welcome! Let's set up your profile before your first look."
	} else {
		m.status = "Updating your profile."
	}
}

// handleWizardInput consumes one wizard answer and advances the flow.
func (m Model) handleWizardInput(input string) (tea.Model, tea.Cmd) {
	switch m.inputMode {
	case InputModeProfileName:
		if input == "" {
			m.status = "Please enter your name."
			return m, nil
		}
		m.pendingName = input
		m.inputMode = InputModeProfileBodyType
		m.textarea.Reset()
		m.textarea.Placeholder = "Body type number or name..."
		m.status = ""
		return m, nil

	case InputModeProfileBodyType:
		bodyType, ok := parseBodyType(input)
		if !ok {
			m.status = fmt.Sprintf("Pick a body type: %s", strings.Join(session.BodyTypes, ", "))
			return m, nil
		}

		profile := session.Profile{UserName: m.pendingName, BodyType: bodyType}
		if err := session.SaveProfile(m.store, profile); err != nil {
			logging.Get(logging.CategorySession).Error("Save profile: %v", err)
			m.status = "Could not save profile, please try again."
			return m, nil
		}

		m.mgr.SetProfile(profile)
		m.mgr.EnsureSessionExists()
		m.inputMode = InputModeNormal
		m.pendingName = ""
		m.textarea.Reset()
		m.textarea.Placeholder = inputPlaceholder
		m.status = fmt.Sprintf("Profile saved: %s, %s. Describe yourself to get your first look.", profile.UserName, profile.BodyType)
		m.refreshTranscript()
		return m, nil
	}
	return m, nil
}

// parseBodyType accepts a 1-based index into the options or an exact name,
// case-insensitively.
func parseBodyType(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= len(session.BodyTypes) {
			return session.BodyTypes[n-1], true
		}
		return "", false
	}

	lowered := strings.ToLower(trimmed)
	for _, bt := range session.BodyTypes {
		if bt == lowered {
			return bt, true
		}
	}
	return "", false
}

// wizardPrompt returns the question shown above the input while the wizard
// is active.
func (m Model) wizardPrompt() string {
	switch m.inputMode {
	case InputModeProfileName:
		return "What should I call you?"
	case InputModeProfileBodyType:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Nice to meet you, %s. What's your body type?\n", m.pendingName))
		for i, bt := range session.BodyTypes {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, bt))
		}
		return strings.TrimRight(sb.String(), "\n")
	}
	return ""
}
