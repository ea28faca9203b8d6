package ui

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed styleguide.yaml
var styleGuideYAML []byte

// GuideEntry is one item on a style guide panel.
type GuideEntry struct {
	Name    string   `yaml:"name"`
	Lines   []string `yaml:"lines"`
	Example string   `yaml:"example"`
}

// GuidePanel is one page of the style guide.
type GuidePanel struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Entries     []GuideEntry `yaml:"entries"`
}

type guideFile struct {
	Panels []GuidePanel `yaml:"panels"`
}

// StyleGuide is the paginated style guide browser.
type StyleGuide struct {
	panels  []GuidePanel
	current int
}

// NewStyleGuide loads the embedded guide content.
func NewStyleGuide() (*StyleGuide, error) {
	var gf guideFile
	if err := yaml.Unmarshal(styleGuideYAML, &gf); err != nil {
		return nil, fmt.Errorf("parse style guide: %w", err)
	}
	if len(gf.Panels) == 0 {
		return nil, fmt.Errorf("style guide has no panels")
	}
	return &StyleGuide{panels: gf.Panels}, nil
}

// Panels returns the number of pages.
func (g *StyleGuide) Panels() int { return len(g.panels) }

// Current returns the active page index.
func (g *StyleGuide) Current() int { return g.current }

// Next advances to the next page, wrapping around.
func (g *StyleGuide) Next() { g.current = (g.current + 1) % len(g.panels) }

// Prev moves to the previous page, wrapping around.
func (g *StyleGuide) Prev() { g.current = (g.current - 1 + len(g.panels)) % len(g.panels) }

// View renders the active panel.
func (g *StyleGuide) View(s Styles, width int) string {
	panel := g.panels[g.current]
	var sb strings.Builder

	sb.WriteString(s.Title.Render(panel.Title))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Italic(true).Render(panel.Description))
	sb.WriteString("\n\n")

	for _, e := range panel.Entries {
		if e.Name != "" {
			sb.WriteString(s.Bold.Foreground(s.Theme.Secondary).Render(e.Name))
			sb.WriteString("\n")
		}
		for _, line := range e.Lines {
			sb.WriteString("  " + line + "\n")
		}
		if e.Example != "" {
			sb.WriteString(s.Muted.Render("  e.g. "+e.Example) + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(g.renderDots(s))
	sb.WriteString("\n")
	sb.WriteString(s.Footer.Render("←/→ page · esc close"))
	return sb.String()
}

// renderDots draws the page position indicator.
func (g *StyleGuide) renderDots(s Styles) string {
	dots := make([]string, len(g.panels))
	for i := range g.panels {
		if i == g.current {
			dots[i] = s.Bold.Foreground(s.Theme.Accent).Render("●")
		} else {
			dots[i] = s.Muted.Render("·")
		}
	}
	return strings.Join(dots, " ")
}
