package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/roastbot/internal/keystore"
	"github.com/apresai/roastbot/internal/safety"
)

// clearCredentials forces every session onto the offline template chain.
func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		keystore.EnvCohere, keystore.EnvGemini, keystore.EnvOpenAI,
		keystore.EnvAnthropic, keystore.EnvHuggingFace,
	} {
		t.Setenv(key, "")
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textPayload(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func newTestHandlers() *Handlers {
	return NewHandlers(newSessionStore(4), slog.Default())
}

func TestHandleGenerateRoast(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()

	res, err := h.HandleGenerateRoast(context.Background(), callRequest(map[string]any{
		"message":    "roast me, I'm a programmer",
		"session_id": "s1",
		"persona":    "witty",
		"intensity":  "mild",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	payload := textPayload(t, res)
	assert.NotEmpty(t, payload["reply"])
	assert.Equal(t, "witty", payload["persona"])
	assert.Equal(t, "mild", payload["intensity"])
}

func TestHandleGenerateRoastValidation(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()

	res, err := h.HandleGenerateRoast(context.Background(), callRequest(map[string]any{
		"message": "   ",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.HandleGenerateRoast(context.Background(), callRequest(map[string]any{
		"message": "hello",
		"persona": "gremlin",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.HandleGenerateRoast(context.Background(), callRequest(map[string]any{
		"message":   "hello",
		"intensity": "nuclear",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleGenerateRoastSafetyOverride(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()

	res, err := h.HandleGenerateRoast(context.Background(), callRequest(map[string]any{
		"message":    "I want to kill myself",
		"session_id": "crisis",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	payload := textPayload(t, res)
	assert.Equal(t, safety.CrisisMessage, payload["reply"])
}

func TestSessionTranscriptPersistsAcrossCalls(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()
	ctx := context.Background()

	for _, msg := range []string{"first message", "second message"} {
		res, err := h.HandleGenerateRoast(ctx, callRequest(map[string]any{
			"message":    msg,
			"session_id": "persistent",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)
	}

	res, err := h.HandleGetTranscript(ctx, callRequest(map[string]any{
		"session_id": "persistent",
	}))
	require.NoError(t, err)

	payload := textPayload(t, res)
	assert.EqualValues(t, 4, payload["count"])
}

func TestSettingsChangeReplacesSession(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()
	ctx := context.Background()

	_, err := h.HandleGenerateRoast(ctx, callRequest(map[string]any{
		"message":    "hello there",
		"session_id": "swap",
		"persona":    "witty",
	}))
	require.NoError(t, err)

	_, err = h.HandleGenerateRoast(ctx, callRequest(map[string]any{
		"message":    "hello again",
		"session_id": "swap",
		"persona":    "brutal",
	}))
	require.NoError(t, err)

	// The persona change rebuilt the engine, so only the latest exchange
	// survives in the transcript.
	res, err := h.HandleGetTranscript(ctx, callRequest(map[string]any{
		"session_id": "swap",
	}))
	require.NoError(t, err)
	payload := textPayload(t, res)
	assert.EqualValues(t, 2, payload["count"])
}

func TestSessionLimitEvictsLeastRecentlyUsed(t *testing.T) {
	clearCredentials(t)
	h := NewHandlers(newSessionStore(1), slog.Default())
	ctx := context.Background()

	res, err := h.HandleGenerateRoast(ctx, callRequest(map[string]any{
		"message":    "hello",
		"session_id": "one",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	// At capacity a new session still works; the idle one is evicted.
	res, err = h.HandleGenerateRoast(ctx, callRequest(map[string]any{
		"message":    "hello",
		"session_id": "two",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Nil(t, h.store.transcript("one"))
	assert.Len(t, h.store.transcript("two"), 2)
}

func TestConcurrentCallsOnOneSessionSerialize(t *testing.T) {
	clearCredentials(t)
	h := newTestHandlers()
	ctx := context.Background()

	const workers = 4
	const perWorker = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				res, err := h.HandleGenerateRoast(ctx, callRequest(map[string]any{
					"message":    "roast me again",
					"session_id": "shared",
				}))
				assert.NoError(t, err)
				assert.False(t, res.IsError)
			}
		}()
	}
	wg.Wait()

	// Every exchange landed as a user/agent pair in order, with nothing
	// lost or interleaved mid-exchange.
	turns := h.store.transcript("shared")
	require.Len(t, turns, 2*workers*perWorker)
	for i, turn := range turns {
		if i%2 == 0 {
			assert.EqualValues(t, "user", turn.Sender, "turn %d", i)
		} else {
			assert.EqualValues(t, "agent", turn.Sender, "turn %d", i)
		}
	}
}

func TestHandleListPersonas(t *testing.T) {
	h := newTestHandlers()

	res, err := h.HandleListPersonas(context.Background(), callRequest(nil))
	require.NoError(t, err)

	payload := textPayload(t, res)
	personas, ok := payload["personas"].([]any)
	require.True(t, ok)
	assert.Len(t, personas, 6)
}
