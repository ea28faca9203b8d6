package session

import (
	"context"
	"errors"
	"strings"

	"lookbook/internal/logging"
	"lookbook/internal/outfit"
)

// Generator issues one generation request. *outfit.Client satisfies this;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req outfit.Request) (*outfit.Response, error)
}

// BeginState is the outcome of the optimistic phase of a send.
type BeginState int

const (
	// BeginRejected: blank input or a request already in flight; nothing
	// was appended and no request should be issued.
	BeginRejected BeginState = iota
	// BeginBlocked: incomplete profile; a single assistant warning was
	// appended and no request should be issued.
	BeginBlocked
	// BeginStarted: the user message was appended and the returned request
	// must be settled exactly once.
	BeginStarted
)

// ErrNothingToSend is returned by Send when the input is rejected.
var ErrNothingToSend = errors.New("nothing to send")

// Reconciler runs the two-phase send cycle: Begin appends the user message
// optimistically and marks a request in flight; Settle merges the response
// or its classified failure back into the transcript. Both phases must run
// on the manager's goroutine; only the network call between them may happen
// elsewhere. At most one request is in flight per session.
type Reconciler struct {
	mgr      *Manager
	client   Generator
	inFlight bool
}

// NewReconciler wires a reconciler to the manager and the service client.
func NewReconciler(mgr *Manager, client Generator) *Reconciler {
	return &Reconciler{mgr: mgr, client: client}
}

// InFlight reports whether a request is awaiting settlement.
func (r *Reconciler) InFlight() bool { return r.inFlight }

// Begin validates and applies the optimistic phase of a send. When it
// returns BeginStarted the caller must issue the request and call Settle
// with the result.
func (r *Reconciler) Begin(text string) (BeginState, outfit.Request) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || r.inFlight {
		return BeginRejected, outfit.Request{}
	}

	profile := r.mgr.Profile()
	if !profile.Complete() {
		r.mgr.Append(Message{
			Origin: OriginAssistant,
			Text:   outfit.ErrProfileIncomplete.UserMessage(),
		})
		return BeginBlocked, outfit.Request{}
	}

	r.mgr.Append(Message{Origin: OriginUser, Text: trimmed})
	r.inFlight = true
	logging.SessionDebug("Send started: %d messages in transcript", len(r.mgr.Messages()))

	return BeginStarted, outfit.Request{
		UserMessage: trimmed,
		BodyType:    profile.BodyType,
		UserName:    profile.UserName,
	}
}

// Settle merges a settled request into the transcript and clears the
// in-flight flag. On success the assistant message carries only the
// structured outfit fields; on failure it carries the classified
// user-facing explanation. Always leaves the session ready for the next
// send.
func (r *Reconciler) Settle(resp *outfit.Response, err error) {
	r.inFlight = false

	if err != nil {
		classified := outfit.Classify(err)
		logging.Get(logging.CategorySession).Warn("Send settled with failure: %s", classified.Kind)
		r.mgr.Append(Message{
			Origin: OriginAssistant,
			Text:   classified.UserMessage(),
		})
		return
	}

	r.mgr.Append(Message{
		Origin:             OriginAssistant,
		ImageURL:           resp.ImageURL,
		StylingTips:        resp.StylingTips,
		AlternativePalette: resp.AlternativePalette,
		Measurements:       resp.Measurements,
		Outfit:             resp.SelectedItems,
	})
	logging.SessionDebug("Send settled: %d messages in transcript", len(r.mgr.Messages()))
}

// Send runs the full cycle synchronously: Begin, the network call, Settle.
// Used by the one-shot CLI path. Returns ErrNothingToSend when the input is
// rejected; precondition warnings and request failures are reported through
// the transcript, not the error return.
func (r *Reconciler) Send(ctx context.Context, text string) error {
	state, req := r.Begin(text)
	switch state {
	case BeginRejected:
		return ErrNothingToSend
	case BeginBlocked:
		return nil
	}

	resp, err := r.client.Generate(ctx, req)
	r.Settle(resp, err)
	return nil
}
