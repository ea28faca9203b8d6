package session

import (
	"strconv"
	"time"

	"lookbook/internal/logging"
)

// historyTitleMax is the rune budget for an archived conversation title.
const historyTitleMax = 30

// defaultTitle is used when the first message has no text.
const defaultTitle = "New conversation"

// ArchiveStore persists history entries across runs. Entries older than the
// grouping windows stay in storage; only the rendered list drops them.
type ArchiveStore interface {
	SaveEntry(e HistoryEntry) error
	LoadHistory() ([]HistoryEntry, error)
}

// Manager owns the process-wide conversation state: the user profile, the
// single active session, and the archive list. All methods must be called
// from one goroutine (the TUI update loop, or the CLI main goroutine).
type Manager struct {
	profile Profile
	active  *Session
	archive []HistoryEntry
	store   ArchiveStore // optional; nil keeps the archive in memory only
	now     func() time.Time
}

// NewManager creates a manager for the given profile. store may be nil.
func NewManager(profile Profile, store ArchiveStore) *Manager {
	return &Manager{profile: profile, store: store, now: time.Now}
}

// Restore loads the persisted archive list. Call once at startup.
func (m *Manager) Restore() error {
	if m.store == nil {
		return nil
	}
	entries, err := m.store.LoadHistory()
	if err != nil {
		return err
	}
	m.archive = entries
	logging.Session("Restored %d history entries", len(entries))
	return nil
}

// Profile returns the current profile snapshot.
func (m *Manager) Profile() Profile { return m.profile }

// SetProfile replaces the profile. The caller persists it separately via
// SaveProfile.
func (m *Manager) SetProfile(p Profile) { m.profile = p }

// Active returns the active session, or nil before the first session exists.
func (m *Manager) Active() *Session { return m.active }

// Messages returns the active session's transcript (nil when no session).
func (m *Manager) Messages() []Message {
	if m.active == nil {
		return nil
	}
	return m.active.Messages
}

// Append adds a message to the active session, creating one first when none
// exists. Creation here skips the profile gate: precondition warnings must
// land in the transcript even before profile setup finishes. The gate stays
// on the request-issuing path.
func (m *Manager) Append(msg Message) {
	if m.active == nil {
		m.active = &Session{ID: m.newSessionID()}
		logging.Session("Session created on append: id=%s", m.active.ID)
	}
	m.active.Messages = append(m.active.Messages, msg)
}

// History returns the archive list, most recently archived first.
func (m *Manager) History() []HistoryEntry { return m.archive }

// EnsureSessionExists creates the active session if none exists and the
// profile is complete. Idempotent.
func (m *Manager) EnsureSessionExists() {
	if m.active != nil || !m.profile.Complete() {
		return
	}
	m.active = &Session{ID: m.newSessionID()}
	logging.Session("Session created: id=%s", m.active.ID)
}

// StartNewSession archives the current conversation (if it has messages)
// and opens a fresh empty session with a new id.
func (m *Manager) StartNewSession() {
	m.archiveActive()
	m.active = &Session{ID: m.newSessionID()}
	logging.Session("New session: id=%s", m.active.ID)
}

// LoadSession archives the current conversation and opens a fresh empty
// session. The selected entry's messages are not restored: history entries
// hold metadata only, so selecting one continues as a new conversation
// tagged with a new id.
func (m *Manager) LoadSession(id string) {
	m.archiveActive()
	m.active = &Session{ID: m.newSessionID()}
	logging.Session("Load session %s: continuing as new session id=%s", id, m.active.ID)
}

// archiveActive snapshots the active session into the archive list.
// No-op when the session is missing or has no messages, so an empty
// conversation never produces a history entry. An existing entry with the
// same session id is replaced and moved to the front.
func (m *Manager) archiveActive() {
	if m.active == nil || len(m.active.Messages) == 0 {
		return
	}

	entry := HistoryEntry{
		ID:        m.active.ID,
		Title:     titleFor(m.active.Messages),
		UserName:  m.profile.UserName,
		BodyType:  m.profile.BodyType,
		Timestamp: m.now().UnixMilli(),
	}

	filtered := make([]HistoryEntry, 0, len(m.archive)+1)
	filtered = append(filtered, entry)
	for _, e := range m.archive {
		if e.ID != entry.ID {
			filtered = append(filtered, e)
		}
	}
	m.archive = filtered

	if m.store != nil {
		if err := m.store.SaveEntry(entry); err != nil {
			logging.Get(logging.CategorySession).Error("Persist history entry %s: %v", entry.ID, err)
		}
	}
	logging.Session("Archived session %s: %q", entry.ID, entry.Title)
}

// titleFor derives the archive title from the first message's text,
// truncated to historyTitleMax runes.
func titleFor(messages []Message) string {
	text := messages[0].Text
	if text == "" {
		return defaultTitle
	}
	runes := []rune(text)
	if len(runes) > historyTitleMax {
		return string(runes[:historyTitleMax])
	}
	return text
}

// newSessionID returns a time-based unique token. The real clock is used
// even when archive timestamps are stubbed, so back-to-back sessions never
// share an id.
func (m *Manager) newSessionID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
