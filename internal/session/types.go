// Package session implements the conversation core: the active session and
// its message sequence, optimistic send/settle reconciliation, archiving of
// finished conversations, and grouping of the archive for display.
package session

import "lookbook/internal/outfit"

// Origin identifies who produced a message.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Message is one entry in a session's transcript. Messages are never
// mutated after they are appended. A message always carries text or an
// image URL; the in-flight loading indicator is TUI state, not a Message.
type Message struct {
	Origin             Origin
	Text               string
	ImageURL           string
	StylingTips        string
	AlternativePalette string
	Measurements       *outfit.Measurements
	Outfit             *outfit.Selection
}

// Session is one continuous active conversation.
type Session struct {
	ID       string
	Messages []Message
}

// HistoryEntry is the archived metadata snapshot of a finished session.
// It does not hold message content; selecting an entry later starts a new
// conversation rather than resuming this one.
type HistoryEntry struct {
	ID        string
	Title     string
	UserName  string
	BodyType  string
	Timestamp int64 // archive time, Unix milliseconds
}

// Group is one date bucket of history entries.
type Group struct {
	Label   string
	Entries []HistoryEntry
}
