// Package ui provides the visual styling for the lookbook TUI, plus the
// paginated style guide. Light/dark palettes follow the lookbook brand
// gradient (violet to pink).
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	LightBackground = lipgloss.Color("#f7f4ff")
	LightForeground = lipgloss.Color("#241b3d")
	LightPrimary    = lipgloss.Color("#9b87f5") // Violet
	LightAccent     = lipgloss.Color("#ffa6f6") // Pink
	LightSecondary  = lipgloss.Color("#c4b5fd")
	LightMuted      = lipgloss.Color("#8a82a6")
	LightBorder     = lipgloss.Color("#ddd4f0")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#0d0916")
	DarkForeground = lipgloss.Color("#f2f0f7")
	DarkPrimary    = lipgloss.Color("#5227ff") // Electric violet
	DarkAccent     = lipgloss.Color("#ff9ffc") // Pink
	DarkSecondary  = lipgloss.Color("#b19eef")
	DarkMuted      = lipgloss.Color("#6f6590")
	DarkBorder     = lipgloss.Color("#2b2344")
	DarkCard       = lipgloss.Color("#171126")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#4caf50")
	Warning     = lipgloss.Color("#ffc107")
	Info        = lipgloss.Color("#2196f3")

	// Result card accents, mirroring the original web client's panels
	TipsAccent    = lipgloss.Color("#c084fc") // purple - styling tips
	PaletteAccent = lipgloss.Color("#60a5fa") // blue - colors
	MeasureAccent = lipgloss.Color("#4ade80") // green - body guide
	OutfitAccent  = lipgloss.Color("#818cf8") // indigo - selection
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName maps a configured theme name to its Theme. Unknown names get
// the dark theme, matching the app default.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// ContentWidth converts the configured font size into a transcript column
// budget within the terminal width. Terminal cells don't scale, so "font
// size" trades line width for readability instead.
func ContentWidth(fontSize string, termWidth int) int {
	var max int
	switch fontSize {
	case "small":
		max = 100
	case "large":
		max = 60
	default:
		max = 80
	}
	if termWidth-4 < max {
		return termWidth - 4
	}
	return max
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Chat bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style

	// Result cards
	ImageCard   lipgloss.Style
	OutfitCard  lipgloss.Style
	TipsCard    lipgloss.Style
	PaletteCard lipgloss.Style
	MeasureCard lipgloss.Style
	CardLabel   lipgloss.Style

	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a Styles instance for the theme.
func NewStyles(theme Theme) Styles {
	card := func(accent lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginTop(1)
	}

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		UserBubble: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		AssistantBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		ImageCard:   card(theme.Secondary),
		OutfitCard:  card(OutfitAccent),
		TipsCard:    card(TipsAccent),
		PaletteCard: card(PaletteAccent),
		MeasureCard: card(MeasureAccent),

		CardLabel: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
