// Package provider contains one adapter per text-generation backend, all
// implementing a single Generate contract over different wire formats.
// Which backends run, and in what order, is data: see Chain.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apresai/roastbot/internal/offline"
	"github.com/apresai/roastbot/internal/prompt"
)

// Adapter is the uniform generation contract. Implementations translate a
// prompt.Bundle into their backend's request shape and extract the reply.
type Adapter interface {
	Name() string
	Generate(ctx context.Context, b prompt.Bundle) (string, error)
}

// The full failure taxonomy. Adapters wrap these so callers can branch
// with errors.Is without seeing backend-specific detail.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("provider unavailable")
	ErrMalformed   = errors.New("malformed response")
)

const (
	// minResponseLength: anything shorter after trimming is treated as
	// malformed rather than shown to the user.
	minResponseLength = 10

	// minRequestInterval is the per-adapter-instance spacing floor.
	minRequestInterval = 1 * time.Second

	// RetryCooldown is how long the engine waits before its single retry
	// after a rate-limit failure.
	RetryCooldown = 10 * time.Second

	defaultHTTPTimeout = 30 * time.Second

	maxTokens   = 150
	temperature = 0.9
)

// classifyStatus maps an HTTP status to the error taxonomy.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrAuth
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrUnavailable
	}
}

// finalize trims a raw completion and rejects responses too short to be a
// real roast.
func finalize(text string) (string, error) {
	out := strings.TrimSpace(text)
	if len(out) < minResponseLength {
		return "", fmt.Errorf("response too short (%d chars): %w", len(out), ErrMalformed)
	}
	return out, nil
}

// Throttle enforces minimum spacing between calls on one adapter instance.
// The timestamp is recorded after the wait completes, not before, so two
// near-simultaneous callers cannot both slip under the interval. Instances
// are session-owned and not shared, so no lock is needed.
type Throttle struct {
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle with the standard 1s spacing.
func NewThrottle() *Throttle {
	return NewThrottleInterval(minRequestInterval)
}

// NewThrottleInterval creates a throttle with custom spacing (tests use
// short intervals).
func NewThrottleInterval(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait suspends the caller until the spacing interval has elapsed since
// the previous call on this instance.
func (t *Throttle) Wait(ctx context.Context) error {
	if !t.last.IsZero() {
		if remaining := t.interval - time.Since(t.last); remaining > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(remaining):
			}
		}
	}
	t.last = time.Now()
	return nil
}

// Credentials carries per-backend API keys. An empty string disables that
// backend; all-empty routes everything to the offline template adapter.
type Credentials struct {
	Cohere      string
	Gemini      string
	OpenAI      string
	Anthropic   string
	HuggingFace string
	Custom      *CustomConfig
}

// HasRemote reports whether any network backend is configured.
func (c Credentials) HasRemote() bool {
	return c.Cohere != "" || c.Gemini != "" || c.OpenAI != "" ||
		c.Anthropic != "" || c.HuggingFace != "" || c.Custom != nil
}

// Chain builds the ordered adapter policy list for one session. Priority
// is a data change here, not a code change: Cohere, Gemini, OpenAI,
// Claude, HuggingFace, then the user's custom backend. The offline
// template adapter always terminates the chain so generation cannot fail
// outright.
func Chain(settings prompt.Settings, creds Credentials, engine *offline.Engine) []Adapter {
	var chain []Adapter
	if creds.Cohere != "" {
		chain = append(chain, NewCohere(creds.Cohere))
	}
	if creds.Gemini != "" {
		chain = append(chain, NewGemini(creds.Gemini))
	}
	if creds.OpenAI != "" {
		chain = append(chain, NewOpenAI(creds.OpenAI))
	}
	if creds.Anthropic != "" {
		chain = append(chain, NewClaude(creds.Anthropic))
	}
	if creds.HuggingFace != "" {
		chain = append(chain, NewHuggingFace(creds.HuggingFace))
	}
	if creds.Custom != nil {
		chain = append(chain, NewCustom(*creds.Custom))
	}
	chain = append(chain, NewTemplate(settings, engine))
	return chain
}

// flattenPrompt renders a bundle as one string for single-prompt backends.
func flattenPrompt(b prompt.Bundle) string {
	var sb strings.Builder
	sb.WriteString(b.System)
	sb.WriteString("\n\n")
	sb.WriteString(b.ContextNarrative)
	sb.WriteString("\n\n")
	for _, m := range b.Messages {
		switch m.Role {
		case prompt.RoleAssistant:
			sb.WriteString("Roaster: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Roaster:")
	return sb.String()
}

// systemText merges the system instruction with the context narrative for
// chat-style backends, which take the pair as one system message.
func systemText(b prompt.Bundle) string {
	return b.System + "\n\n" + b.ContextNarrative
}
