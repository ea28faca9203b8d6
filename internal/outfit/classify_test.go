package outfit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponseDetailString(t *testing.T) {
	re := ClassifyResponse(500, []byte(`{"detail":"boom"}`))
	require.Equal(t, KindServerError, re.Kind)
	assert.Equal(t, 500, re.Status)
	assert.Equal(t, "boom", re.Detail)
	assert.Equal(t, "❌ Error: boom", re.UserMessage())
}

func TestClassifyResponseDetailMessage(t *testing.T) {
	re := ClassifyResponse(422, []byte(`{"detail":{"message":"invalid body type"}}`))
	assert.Equal(t, "invalid body type", re.Detail)
}

func TestClassifyResponseRawBody(t *testing.T) {
	re := ClassifyResponse(502, []byte("upstream exploded"))
	assert.Equal(t, "upstream exploded", re.Detail)
}

func TestClassifyResponseFallback(t *testing.T) {
	cases := map[string][]byte{
		"empty body":          nil,
		"whitespace body":     []byte("   \n"),
		"json without detail": []byte(`{"error":"nope"}`),
		"detail wrong shape":  []byte(`{"detail":[1,2]}`),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			re := ClassifyResponse(500, body)
			assert.Equal(t, "Server error (500)", re.Detail)
		})
	}
}

func TestClassifyPassesThroughRequestErrors(t *testing.T) {
	orig := &RequestError{Kind: KindNetworkUnreachable}
	assert.Same(t, orig, Classify(orig))
}

func TestClassifyWrapsUnknownErrors(t *testing.T) {
	err := errors.New("something odd")
	re := Classify(err)
	require.Equal(t, KindUnknown, re.Kind)
	assert.Equal(t, "❌ Error: something odd", re.UserMessage())
	assert.ErrorIs(t, re, err)
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestUserMessageTemplates(t *testing.T) {
	assert.Equal(t,
		"⚠️ Please complete your profile first (name and body type).",
		ErrProfileIncomplete.UserMessage())

	unreachable := (&RequestError{Kind: KindNetworkUnreachable}).UserMessage()
	assert.True(t, strings.HasPrefix(unreachable, "❌ Cannot connect to the outfit service."))
	assert.Contains(t, unreachable, "LOOKBOOK_SERVICE_URL")
	assert.Contains(t, unreachable, "OPENAI_API_KEY")
}

func TestRequestErrorError(t *testing.T) {
	re := &RequestError{Kind: KindServerError, Status: 500, Detail: "boom"}
	assert.Contains(t, re.Error(), "server_error")
	assert.Contains(t, re.Error(), "boom")
}
