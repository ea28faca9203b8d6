package outfit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"lookbook/internal/logging"
)

// generatePath is the service's single endpoint.
const generatePath = "/generate-outfit"

// Client talks to the outfit-generation service. It performs no retries and
// sets no timeout of its own: a pending request runs until it settles or the
// caller's context ends.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL
// (e.g. "http://127.0.0.1:8000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Generate issues one generation request. Every returned error is a
// *RequestError carrying its classification.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "Generate")
	defer timer.Stop()

	reqID := uuid.NewString()
	logging.API("Generate request %s: body_type=%s user=%s message_len=%d",
		reqID, req.BodyType, req.UserName, len(req.UserMessage))

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &RequestError{Kind: KindUnknown, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Kind: KindUnknown, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("Generate %s: transport failure: %v", reqID, err)
		return nil, &RequestError{Kind: KindNetworkUnreachable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: KindUnknown, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := ClassifyResponse(resp.StatusCode, body)
		logging.Get(logging.CategoryAPI).Error("Generate %s: status=%d detail=%s", reqID, resp.StatusCode, re.Detail)
		return nil, re
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &RequestError{Kind: KindUnknown, Err: fmt.Errorf("decode response: %w", err)}
	}

	logging.APIDebug("Generate %s: ok image=%q items=%d", reqID, out.ImageURL, len(out.SelectedItems.Items()))
	return &out, nil
}
