package roast

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/roastbot/internal/analytics"
	"github.com/apresai/roastbot/internal/offline"
	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/prompt"
	"github.com/apresai/roastbot/internal/provider"
	"github.com/apresai/roastbot/internal/safety"
)

// stubAdapter returns a scripted sequence of results, one per call.
type stubAdapter struct {
	name    string
	replies []string
	errs    []error
	calls   int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Generate(_ context.Context, _ prompt.Bundle) (string, error) {
	i := s.calls
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	s.calls++
	return s.replies[i], s.errs[i]
}

// recordingEmitter captures every analytics event for assertions.
type recordingEmitter struct {
	events []analytics.Event
}

func (r *recordingEmitter) Emit(_ context.Context, e analytics.Event) error {
	r.events = append(r.events, e)
	return nil
}

func newTestEngine(t *testing.T, chain []provider.Adapter, emitter analytics.Emitter) *Engine {
	t.Helper()
	return New(Config{
		Settings:      prompt.Settings{Persona: "brutal", Intensity: persona.Savage},
		Chain:         chain,
		Analytics:     emitter,
		RetryCooldown: time.Millisecond,
		Rand:          rand.New(rand.NewSource(1)),
	})
}

func TestGenerateReplyHappyPath(t *testing.T) {
	emitter := &recordingEmitter{}
	adapter := &stubAdapter{name: "stub", replies: []string{"a sufficiently cutting reply"}, errs: []error{nil}}
	e := newTestEngine(t, []provider.Adapter{adapter}, emitter)

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "a sufficiently cutting reply", reply)

	turns := e.Window().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, SenderUser, turns[0].Sender)
	assert.Equal(t, "hey", turns[0].Text)
	assert.Equal(t, SenderAgent, turns[1].Sender)
	assert.Equal(t, reply, turns[1].Text)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, analytics.EventRoastGenerated, emitter.events[0].Name)
	assert.Equal(t, "brutal", emitter.events[0].Persona)
	assert.Equal(t, "stub", emitter.events[0].Provider)
}

func TestGenerateReplySafetyGateBypassesChain(t *testing.T) {
	emitter := &recordingEmitter{}
	adapter := &stubAdapter{name: "stub", replies: []string{"should never be called"}, errs: []error{nil}}
	e := newTestEngine(t, []provider.Adapter{adapter}, emitter)

	reply, err := e.GenerateReply(context.Background(), "I want to kill myself")
	require.NoError(t, err)
	assert.Equal(t, safety.CrisisMessage, reply)
	assert.Zero(t, adapter.calls)

	// The exchange is recorded but flagged out of future prompts.
	turns := e.Window().Turns()
	require.Len(t, turns, 2)
	assert.True(t, turns[0].Flagged)
	assert.True(t, turns[1].Flagged)
	assert.Empty(t, e.Window().Recent(6))

	require.Len(t, emitter.events, 1)
	assert.Equal(t, analytics.EventSafetyOverride, emitter.events[0].Name)
}

func TestGenerateReplyFallsThroughFailedAdapters(t *testing.T) {
	broken := &stubAdapter{name: "broken", replies: []string{""}, errs: []error{provider.ErrUnavailable}}
	healthy := &stubAdapter{name: "healthy", replies: []string{"the second adapter saves the day"}, errs: []error{nil}}
	e := newTestEngine(t, []provider.Adapter{broken, healthy}, nil)

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "the second adapter saves the day", reply)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestGenerateReplyRateLimitSingleRetry(t *testing.T) {
	limited := &stubAdapter{
		name:    "limited",
		replies: []string{"", "recovered after the cooldown"},
		errs:    []error{provider.ErrRateLimited, nil},
	}
	e := newTestEngine(t, []provider.Adapter{limited}, nil)

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "recovered after the cooldown", reply)
	assert.Equal(t, 2, limited.calls)
}

func TestGenerateReplyRateLimitRetryFailsMovesOn(t *testing.T) {
	limited := &stubAdapter{
		name:    "limited",
		replies: []string{"", ""},
		errs:    []error{provider.ErrRateLimited, provider.ErrRateLimited},
	}
	next := &stubAdapter{name: "next", replies: []string{"the next adapter answers instead"}, errs: []error{nil}}
	e := newTestEngine(t, []provider.Adapter{limited, next}, nil)

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "the next adapter answers instead", reply)
	assert.Equal(t, 2, limited.calls)
}

func TestGenerateReplyAllAdaptersFailServesFallback(t *testing.T) {
	emitter := &recordingEmitter{}
	broken := &stubAdapter{name: "broken", replies: []string{""}, errs: []error{provider.ErrUnavailable}}
	e := newTestEngine(t, []provider.Adapter{broken}, emitter)

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Contains(t, offline.Fallbacks, reply)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, analytics.EventFallbackServed, emitter.events[0].Name)
	assert.Empty(t, emitter.events[0].Provider)
}

func TestGenerateReplyTemplateTerminatedChain(t *testing.T) {
	// A real chain built with no credentials routes everything offline.
	settings := prompt.Settings{Persona: "witty"}
	chain := provider.Chain(settings, provider.Credentials{}, offline.NewEngineWithRand(rand.New(rand.NewSource(5))))
	e := New(Config{Settings: settings, Chain: chain})

	reply, err := e.GenerateReply(context.Background(), "roast me about my cooking")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Len(t, e.Window().Turns(), 2)
}

func TestGenerateReplyUnknownPersonaFails(t *testing.T) {
	e := New(Config{Settings: prompt.Settings{Persona: "gremlin"}})
	_, err := e.GenerateReply(context.Background(), "hey")
	assert.Error(t, err)
	assert.Zero(t, e.Window().Len())
}

func TestGenerateReplyDiscardsAfterReset(t *testing.T) {
	// An adapter that resets the session while a generation is in flight.
	e := newTestEngine(t, nil, nil)
	resetting := &resetAdapter{engine: nil, reply: "arrived after the session restarted"}
	e.chain = []provider.Adapter{resetting}
	resetting.engine = e

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "arrived after the session restarted", reply)
	assert.Zero(t, e.Window().Len())
}

type resetAdapter struct {
	engine *Engine
	reply  string
}

func (r *resetAdapter) Name() string { return "resetting" }

func (r *resetAdapter) Generate(context.Context, prompt.Bundle) (string, error) {
	r.engine.Reset()
	return r.reply, nil
}

func TestGenerateReplyWindowRidesAlong(t *testing.T) {
	var seen prompt.Bundle
	capture := &captureAdapter{reply: "a reply of adequate length"}
	e := newTestEngine(t, []provider.Adapter{capture}, nil)

	_, err := e.GenerateReply(context.Background(), "first message")
	require.NoError(t, err)
	_, err = e.GenerateReply(context.Background(), "second message")
	require.NoError(t, err)

	seen = capture.last
	require.Len(t, seen.Messages, 3)
	assert.Equal(t, "first message", seen.Messages[0].Content)
	assert.Equal(t, prompt.RoleAssistant, seen.Messages[1].Role)
	assert.Equal(t, "second message", seen.Messages[2].Content)
	assert.Equal(t, "second message", seen.LastUserMessage())
}

type captureAdapter struct {
	reply string
	last  prompt.Bundle
}

func (c *captureAdapter) Name() string { return "capture" }

func (c *captureAdapter) Generate(_ context.Context, b prompt.Bundle) (string, error) {
	c.last = b
	return c.reply, nil
}

func TestGenerateReplyCrisisMessageForEveryPersona(t *testing.T) {
	for _, key := range persona.Keys() {
		for _, level := range persona.Intensities() {
			e := New(Config{
				Settings: prompt.Settings{Persona: key, Intensity: level},
				Chain:    []provider.Adapter{&stubAdapter{name: "stub", replies: []string{"nope"}, errs: []error{nil}}},
			})
			reply, err := e.GenerateReply(context.Background(), "I want to kill myself")
			require.NoError(t, err)
			assert.Equal(t, safety.CrisisMessage, reply, "%s/%s", key, level)
		}
	}
}

func TestGenerateReplyBrutalSavageEndToEnd(t *testing.T) {
	settings := prompt.Settings{Persona: "brutal", Intensity: persona.Savage}
	chain := provider.Chain(settings, provider.Credentials{}, offline.NewEngineWithRand(rand.New(rand.NewSource(9))))
	e := New(Config{Settings: settings, Chain: chain})

	reply, err := e.GenerateReply(context.Background(), "hey")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	turns := e.Window().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, SenderUser, turns[0].Sender)
	assert.Equal(t, "hey", turns[0].Text)
	assert.Equal(t, SenderAgent, turns[1].Sender)
	assert.False(t, turns[0].Flagged)
}

func TestGenerateReplyFallbackOnHTTPFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"short response", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			emitter := &recordingEmitter{}
			e := newTestEngine(t, []provider.Adapter{
				provider.NewCustom(provider.CustomConfig{Endpoint: srv.URL}),
			}, emitter)

			reply, err := e.GenerateReply(context.Background(), "hey")
			require.NoError(t, err)
			assert.Contains(t, offline.Fallbacks, reply)
			require.Len(t, emitter.events, 1)
			assert.Equal(t, analytics.EventFallbackServed, emitter.events[0].Name)
		})
	}
}
