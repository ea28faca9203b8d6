package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lookbook/cmd/lookbook/ui"
	"lookbook/internal/logging"
	"lookbook/internal/outfit"
	"lookbook/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.viewMode {
	case HistoryView:
		body = m.renderHistoryPage()
	case GuideView:
		body = m.styles.Content.Render(m.guide.View(m.styles, m.width))
	default:
		body = m.renderChatPage()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" lookbook ✦ AI stylist ")

	profile := m.mgr.Profile()
	right := ""
	if profile.Complete() {
		right = m.styles.Muted.Render(fmt.Sprintf("%s · %s", profile.UserName, profile.BodyType))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderChatPage() string {
	var sections []string
	sections = append(sections, m.viewport.View())

	if m.isLoading {
		sections = append(sections,
			m.styles.Spinner.Render(m.spinner.View())+m.styles.Muted.Render("Preparing your look..."))
	}
	if m.inputMode != InputModeNormal {
		sections = append(sections, m.styles.Title.Render(m.wizardPrompt()))
	}

	sections = append(sections, m.textarea.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHistoryPage() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Content.Render(m.styles.Title.Render("Conversations")),
		m.list.View(),
	)
}

func (m Model) renderFooter() string {
	var hints string
	switch m.viewMode {
	case HistoryView:
		hints = "enter continue as new chat · esc back"
	case GuideView:
		hints = "←/→ page · esc back"
	default:
		hints = "enter send · /help commands · esc quit"
	}

	footer := m.styles.Footer.Render(hints)
	if m.status != "" {
		footer = m.styles.Footer.Render(m.status) + "\n" + footer
	}
	return footer
}

// renderTranscript renders the full conversation for the viewport.
func (m Model) renderTranscript() string {
	messages := m.mgr.Messages()
	if len(messages) == 0 {
		return m.renderWelcome()
	}

	width := contentWidth(m)
	var sections []string
	for _, msg := range messages {
		if msg.Origin == session.OriginUser {
			sections = append(sections, m.renderUserMessage(msg, width))
		} else {
			sections = append(sections, m.renderAssistantMessage(msg, width))
		}
	}
	return m.styles.Content.Render(strings.Join(sections, "\n\n"))
}

func (m Model) renderWelcome() string {
	name := m.mgr.Profile().UserName
	greeting := "Hi! Describe yourself to get your first look."
	if name != "" {
		greeting = fmt.Sprintf("Hi %s! Describe yourself to get your first look.", name)
	}
	return m.styles.Content.Render(
		m.styles.Title.Render(greeting) + "\n" +
			m.styles.Muted.Render("Format: sex, height, weight, age, shoe size, brands, style: ...") + "\n" +
			m.styles.Muted.Render("Example: "+inputPlaceholder) + "\n\n" +
			m.styles.Muted.Render("Type /guide for the style guide, /help for commands."))
}

func (m Model) renderUserMessage(msg session.Message, width int) string {
	label := m.styles.Bold.Foreground(m.styles.Theme.Primary).Render("You")
	bubble := m.styles.UserBubble.Width(width).Render(msg.Text)
	return label + "\n" + bubble
}

func (m Model) renderAssistantMessage(msg session.Message, width int) string {
	label := m.styles.Bold.Foreground(m.styles.Theme.Accent).Render("lookbook")

	// Error and precondition messages carry text; results carry only the
	// structured fields.
	if msg.Text != "" {
		return label + "\n" + m.styles.AssistantBubble.Width(width).Render(msg.Text)
	}

	var cards []string
	if msg.ImageURL != "" {
		cards = append(cards, m.styles.ImageCard.Width(width).Render(
			m.styles.CardLabel.Render("OUTFIT PREVIEW")+"\n"+msg.ImageURL))
	}
	if items := msg.Outfit.Items(); len(items) > 0 {
		cards = append(cards, m.renderOutfitCard(msg.Outfit, items, width))
	}
	if msg.StylingTips != "" {
		cards = append(cards, m.styles.TipsCard.Width(width).Render(
			m.styles.CardLabel.Render("SUGGESTIONS")+"\n"+m.renderMarkdown(msg.StylingTips)))
	}
	if msg.AlternativePalette != "" {
		cards = append(cards, m.styles.PaletteCard.Width(width).Render(
			m.styles.CardLabel.Render("COLORS")+"\n"+m.renderMarkdown(msg.AlternativePalette)))
	}
	if msg.Measurements != nil {
		cards = append(cards, m.styles.MeasureCard.Width(width).Render(
			m.styles.CardLabel.Render("BODY GUIDE")+"\n"+renderMeasurements(msg.Measurements)))
	}

	if len(cards) == 0 {
		return label + "\n" + m.styles.Muted.Render("(empty response)")
	}
	return label + "\n" + strings.Join(cards, "\n")
}

func (m Model) renderOutfitCard(sel *outfit.Selection, items []outfit.SlotItem, width int) string {
	var sb strings.Builder
	sb.WriteString(m.styles.CardLabel.Render("YOUR SELECTION"))
	for _, si := range items {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%-6s %s — %s",
			si.Label, capitalize(si.Item.Brand), si.Item.Category))
		if len(si.Item.Colors) > 0 {
			sb.WriteString(" (" + strings.Join(si.Item.Colors, ", ") + ")")
		}
		if si.Item.PriceEUR != "" {
			sb.WriteString(" · €" + si.Item.PriceEUR)
		}
		if si.Item.URL != "" {
			sb.WriteString("\n       " + m.styles.Muted.Render(si.Item.URL))
		}
	}
	if total := sel.TotalEUR(); total > 0 {
		sb.WriteString("\n" + m.styles.Bold.Render(fmt.Sprintf("Total €%.2f", total)))
	}
	return m.styles.OutfitCard.Width(width).Render(sb.String())
}

// renderMeasurements lays the measurement fields out as aligned rows.
func renderMeasurements(ms *outfit.Measurements) string {
	rows := []struct {
		label string
		value string
	}{
		{"Chest", fmt.Sprintf("%.0f cm", ms.ChestCircumference)},
		{"Waist", fmt.Sprintf("%.0f cm", ms.WaistCircumference)},
		{"Hips", fmt.Sprintf("%.0f cm", ms.HipCircumference)},
		{"Arm", fmt.Sprintf("%.0f cm", ms.ArmLength)},
		{"Leg", fmt.Sprintf("%.0f cm", ms.LegLength)},
		{"Shoulder/hip", fmt.Sprintf("%.2f", ms.ShoulderHipRatio)},
		{"BMI", fmt.Sprintf("%.1f", ms.BMI)},
	}

	var sb strings.Builder
	for i, r := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-13s %s", r.label, r.value))
	}
	return sb.String()
}

// renderMarkdown renders service text through glamour, falling back to the
// raw text when the renderer is unavailable or panics on odd input.
func (m Model) renderMarkdown(md string) (out string) {
	if m.renderer == nil {
		return md
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Get(logging.CategoryUI).Error("Markdown render panic: %v", r)
			out = md
		}
	}()

	rendered, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n")
}

func contentWidth(m Model) int {
	w := ui.ContentWidth(m.cfg.FontSize, m.viewport.Width)
	if w < 20 {
		w = 20
	}
	return w
}

// capitalize upper-cases the first rune, for brand display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
