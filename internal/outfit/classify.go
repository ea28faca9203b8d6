package outfit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a failed generation request into exactly one cause.
type Kind int

const (
	// KindUnknown covers any failure outside the other three causes.
	KindUnknown Kind = iota
	// KindProfileIncomplete is detected before any network call: the user
	// name or body type is not set.
	KindProfileIncomplete
	// KindNetworkUnreachable means the transport itself failed; no HTTP
	// response was received.
	KindNetworkUnreachable
	// KindServerError means an HTTP response arrived with a non-2xx status.
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindProfileIncomplete:
		return "profile_incomplete"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// RequestError is the structured failure descriptor for a generation
// request. Every failure the client reports is one of these; UserMessage
// renders the deterministic user-facing string for the Kind.
type RequestError struct {
	Kind   Kind
	Status int    // HTTP status, set for KindServerError
	Detail string // extracted server detail or underlying error text
	Err    error  // wrapped cause, when one exists
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("outfit request failed (%s): %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("outfit request failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("outfit request failed (%s)", e.Kind)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ErrProfileIncomplete is the precondition failure appended when a send is
// attempted without a complete profile.
var ErrProfileIncomplete = &RequestError{Kind: KindProfileIncomplete}

const profileIncompleteMessage = "⚠️ Please complete your profile first (name and body type)."

const networkUnreachableMessage = `❌ Cannot connect to the outfit service.

🔧 Troubleshooting:
1. Is the backend running? It must accept POST /generate-outfit at the
   configured service URL (service_url in ~/.lookbook/config.json, or
   the LOOKBOOK_SERVICE_URL environment variable).
2. Make sure the service has its credentials configured:
   OPENAI_API_KEY=your_key_here
   TOGETHER_API_KEY=your_key_here (optional)
3. Try again once the service is reachable.`

// UserMessage renders the user-facing text for this failure. The templates
// are fixed per Kind so the mapping stays deterministic.
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case KindProfileIncomplete:
		return profileIncompleteMessage
	case KindNetworkUnreachable:
		return networkUnreachableMessage
	case KindServerError:
		return "❌ Error: " + e.Detail
	default:
		if e.Detail != "" {
			return "❌ Error: " + e.Detail
		}
		if e.Err != nil {
			return "❌ Error: " + e.Err.Error()
		}
		return "❌ Error: failed to generate outfit."
	}
}

// Classify maps any error from a generation request to its RequestError.
// Errors produced by the client pass through; anything else is surfaced
// verbatim as KindUnknown.
func Classify(err error) *RequestError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RequestError); ok {
		return re
	}
	return &RequestError{Kind: KindUnknown, Detail: err.Error(), Err: err}
}

// errorBody is the failure payload shape the service emits:
// {"detail": "..."} or {"detail": {"message": "..."}}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// ClassifyResponse builds the RequestError for a non-2xx HTTP response.
// Detail extraction, in order: detail.message, detail as a string, the raw
// body text, then a generic status-coded fallback.
func ClassifyResponse(status int, body []byte) *RequestError {
	fallback := fmt.Sprintf("Server error (%d)", status)
	detail := fallback

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if len(eb.Detail) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			var s string
			switch {
			case json.Unmarshal(eb.Detail, &nested) == nil && nested.Message != "":
				detail = nested.Message
			case json.Unmarshal(eb.Detail, &s) == nil && s != "":
				detail = s
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		detail = text
	}

	return &RequestError{Kind: KindServerError, Status: status, Detail: detail}
}
