// Package analytics emits one usage event per completed exchange.
// Delivery is strictly best-effort: a failing emitter must never affect
// the generation result, so the engine logs and discards emit errors.
package analytics

import (
	"context"
	"log/slog"
	"time"
)

// Event names.
const (
	EventRoastGenerated = "roast_generated"
	EventSafetyOverride = "safety_override"
	EventFallbackServed = "fallback_served"
)

// Event describes one completed exchange.
type Event struct {
	Name          string        `json:"name"`
	Persona       string        `json:"persona"`
	Provider      string        `json:"provider,omitempty"`
	MessageLength int           `json:"message_length"`
	Latency       time.Duration `json:"latency_ms"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Emitter delivers events to wherever the deployment keeps its metrics.
type Emitter interface {
	Emit(ctx context.Context, e Event) error
}

// SlogEmitter writes events to structured logs, the default when no
// delivery backend is configured.
type SlogEmitter struct {
	log *slog.Logger
}

func NewSlogEmitter(log *slog.Logger) *SlogEmitter {
	return &SlogEmitter{log: log}
}

func (s *SlogEmitter) Emit(ctx context.Context, e Event) error {
	s.log.InfoContext(ctx, "analytics event",
		"event", e.Name,
		"persona", e.Persona,
		"provider", e.Provider,
		"message_length", e.MessageLength,
		"latency_ms", e.Latency.Milliseconds(),
	)
	return nil
}

// NopEmitter discards everything; used in tests.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) error { return nil }
