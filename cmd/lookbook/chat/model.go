// Package chat provides the interactive TUI for lookbook. The interface is
// split across files:
//   - model.go: types, construction, Init
//   - model_update.go: the Update loop
//   - view.go: rendering
//   - commands.go: /command handling
//   - send.go: the send/settle cycle against the outfit service
//   - wizard.go: first-run profile setup
package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lookbook/cmd/lookbook/ui"
	"lookbook/internal/config"
	"lookbook/internal/logging"
	"lookbook/internal/outfit"
	"lookbook/internal/session"
	"lookbook/internal/store"
)

// ViewMode determines which page is active.
type ViewMode int

const (
	ChatView ViewMode = iota
	HistoryView
	GuideView
)

// InputMode represents the input handling state. The profile wizard states
// keep setup out of the normal send path.
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeProfileName
	InputModeProfileBodyType
)

// historyItem is a list item for the conversation history page.
type historyItem struct {
	id    string
	group string
	title string
	when  string
}

func (i historyItem) Title() string       { return i.title }
func (i historyItem) Description() string { return fmt.Sprintf("%s · %s", i.group, i.when) }
func (i historyItem) FilterValue() string { return i.title }

// outfitResultMsg carries a settled generation request back to Update.
type outfitResultMsg struct {
	resp *outfit.Response
	err  error
}

// Model is the main model for the interactive chat interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	list     list.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer
	guide    *ui.StyleGuide

	// Collaborators
	cfg    *config.UserConfig
	store  *store.Store
	mgr    *session.Manager
	rec    *session.Reconciler
	client session.Generator

	// State
	viewMode    ViewMode
	inputMode   InputMode
	pendingName string
	isLoading   bool
	status      string
	width       int
	height      int
	ready       bool
}

const inputPlaceholder = "male, 178, 80, 26, 43, zara massimo-dutti, style: elegant..."

// New builds the chat model. The profile wizard starts automatically when
// the stored profile is incomplete.
func New(cfg *config.UserConfig, st *store.Store, mgr *session.Manager, rec *session.Reconciler, client session.Generator) (Model, error) {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	li := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	li.SetShowTitle(false)
	li.SetShowStatusBar(false)
	li.SetFilteringEnabled(false)

	guide, err := ui.NewStyleGuide()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		textarea: ta,
		spinner:  sp,
		list:     li,
		styles:   styles,
		guide:    guide,
		cfg:      cfg,
		store:    st,
		mgr:      mgr,
		rec:      rec,
		client:   client,
	}

	if mgr.Profile().Complete() {
		mgr.EnsureSessionExists()
	} else {
		m.startProfileWizard(true)
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Run wires the collaborators together and runs the TUI until exit.
func Run(cfg *config.UserConfig, st *store.Store) error {
	profile, err := session.LoadProfile(st)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	mgr := session.NewManager(profile, st)
	if err := mgr.Restore(); err != nil {
		return fmt.Errorf("restore history: %w", err)
	}

	client := outfit.NewClient(cfg.ResolvedServiceURL())
	rec := session.NewReconciler(mgr, client)

	m, err := New(cfg, st, mgr, rec, client)
	if err != nil {
		return err
	}

	logging.Get(logging.CategoryUI).Info("Starting chat TUI (service=%s)", cfg.ResolvedServiceURL())
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
