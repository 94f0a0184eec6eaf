// Package roast is the orchestration layer: it runs one inbound message
// through the safety gate, context extraction, prompt construction, and
// the ordered provider chain, and owns the conversation window.
package roast

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/roastbot/internal/analytics"
	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/profile"
	"github.com/apresai/roastbot/internal/prompt"
	"github.com/apresai/roastbot/internal/provider"
	"github.com/apresai/roastbot/internal/safety"
)

var tracer = otel.Tracer("roastbot")

// windowSize is how many recent turns ride along on each provider call.
const windowSize = 6

// Config wires an Engine. Settings and Chain are required; everything
// else has a working default.
type Config struct {
	Settings  prompt.Settings
	Chain     []provider.Adapter
	Analytics analytics.Emitter
	Logger    *slog.Logger
	// RetryCooldown overrides the wait before the single rate-limit
	// retry. Tests shorten it; production uses provider.RetryCooldown.
	RetryCooldown time.Duration
	// Rand overrides the fallback selector's randomness in tests.
	Rand *rand.Rand
}

// Engine processes one message at a time for one session. It is not
// shared across sessions; each session constructs its own.
type Engine struct {
	settings prompt.Settings
	chain    []provider.Adapter
	window   *Window
	events   analytics.Emitter
	log      *slog.Logger
	fallback fallbackSelector
	cooldown time.Duration
}

// New constructs a session engine. The settings are snapshotted: updating
// them mid-session means building a new Engine (and a new chain), so an
// in-flight call can never observe half-updated configuration.
func New(cfg Config) *Engine {
	if cfg.Analytics == nil {
		cfg.Analytics = analytics.NopEmitter{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RetryCooldown == 0 {
		cfg.RetryCooldown = provider.RetryCooldown
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		settings: cfg.Settings,
		chain:    cfg.Chain,
		window:   NewWindow(),
		events:   cfg.Analytics,
		log:      cfg.Logger,
		fallback: fallbackSelector{rng: cfg.Rand},
		cooldown: cfg.RetryCooldown,
	}
}

// Window exposes the session transcript for display.
func (e *Engine) Window() *Window { return e.window }

// Reset clears the transcript and issues a new session identity.
func (e *Engine) Reset() { e.window.Clear() }

// GenerateReply is the single entry point consumed by the chat UI. It
// returns an error only for programmer/configuration mistakes (an unknown
// persona key); every provider-level failure is absorbed into a fallback
// line instead.
func (e *Engine) GenerateReply(ctx context.Context, userText string) (string, error) {
	ctx, span := tracer.Start(ctx, "roast.generate_reply")
	defer span.End()

	start := time.Now()
	session := e.window.SessionID()

	// Safety gate runs before anything else and bypasses everything else.
	if verdict := safety.Classify(userText); verdict.Matched {
		span.SetAttributes(attribute.String("safety.category", verdict.Category))
		e.log.InfoContext(ctx, "safety interceptor matched", "category", verdict.Category)

		if e.window.SessionID() == session {
			e.window.Append(userText, SenderUser, true)
			e.window.Append(safety.CrisisMessage, SenderAgent, true)
		}
		e.emit(ctx, analytics.Event{
			Name:          analytics.EventSafetyOverride,
			Persona:       e.personaKey(),
			MessageLength: len(userText),
			Latency:       time.Since(start),
		})
		return safety.CrisisMessage, nil
	}

	live := profile.Analyze(userText)
	enriched := profile.Merge(live, e.settings.Profile)

	msgs := append(e.window.Recent(windowSize), prompt.Message{Role: prompt.RoleUser, Content: userText})
	bundle, err := prompt.Build(e.settings, enriched, msgs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prompt build failed")
		return "", err
	}

	reply, providerName := e.runChain(ctx, bundle)
	eventName := analytics.EventRoastGenerated
	if reply == "" {
		reply = e.fallback.pick()
		providerName = ""
		eventName = analytics.EventFallbackServed
	}

	// A session restart while the call was in flight invalidates the
	// response for history purposes; the text itself is still returned.
	if e.window.SessionID() == session {
		e.window.Append(userText, SenderUser, false)
		e.window.Append(reply, SenderAgent, false)
	} else {
		e.log.WarnContext(ctx, "session restarted mid-generation, discarding transcript append")
	}

	span.SetAttributes(
		attribute.String("provider", providerName),
		attribute.Int("reply_length", len(reply)),
	)
	e.emit(ctx, analytics.Event{
		Name:          eventName,
		Persona:       e.personaKey(),
		Provider:      providerName,
		MessageLength: len(userText),
		Latency:       time.Since(start),
	})
	return reply, nil
}

// runChain walks the ordered adapter list until one produces a usable
// reply. A rate-limited adapter gets exactly one retry after the
// cooldown; any other failure moves straight to the next adapter.
func (e *Engine) runChain(ctx context.Context, bundle prompt.Bundle) (reply, providerName string) {
	for _, adapter := range e.chain {
		text, err := adapter.Generate(ctx, bundle)
		if errors.Is(err, provider.ErrRateLimited) {
			e.log.InfoContext(ctx, "provider rate limited, retrying once",
				"provider", adapter.Name(), "cooldown", e.cooldown)
			select {
			case <-ctx.Done():
				return "", ""
			case <-time.After(e.cooldown):
			}
			text, err = adapter.Generate(ctx, bundle)
		}
		if err != nil {
			e.log.WarnContext(ctx, "provider failed", "provider", adapter.Name(), "error", err)
			continue
		}
		return text, adapter.Name()
	}
	return "", ""
}

func (e *Engine) emit(ctx context.Context, event analytics.Event) {
	if err := e.events.Emit(ctx, event); err != nil {
		e.log.WarnContext(ctx, "analytics emit failed", "error", err)
	}
}

func (e *Engine) personaKey() string {
	if e.settings.Persona != "" {
		return e.settings.Persona
	}
	return persona.Default().Key
}
