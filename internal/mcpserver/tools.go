package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/roastbot/internal/analytics"
	"github.com/apresai/roastbot/internal/offline"
	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/prompt"
	"github.com/apresai/roastbot/internal/provider"
	"github.com/apresai/roastbot/internal/roast"
)

var tracer = otel.Tracer("roastbot-mcp")

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "generate_roast",
			Description: "Generate a short comedic roast reply to a message. Maintains a per-session conversation transcript; pass the same session_id to keep context across calls.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"message": map[string]any{
						"type":        "string",
						"description": "The user message to roast",
					},
					"session_id": map[string]any{
						"type":        "string",
						"description": "Opaque session identifier; reuse it to keep conversation context",
						"default":     "default",
					},
					"persona": map[string]any{
						"type":        "string",
						"description": "Roasting persona: sarcastic, brutal, witty, deadpan, theatrical, chaotic",
						"default":     "sarcastic",
					},
					"intensity": map[string]any{
						"type":        "string",
						"description": "Roast severity: mild, medium, savage",
						"default":     "medium",
					},
					"allow_profanity": map[string]any{
						"type":        "boolean",
						"description": "Permit mild profanity at savage intensity",
						"default":     false,
					},
				},
				Required: []string{"message"},
			},
		},
		{
			Name:        "list_personas",
			Description: "List the available roasting personas with their descriptions and traits.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
		{
			Name:        "get_transcript",
			Description: "Return the conversation transcript for a session, oldest turn first.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"session_id": map[string]any{
						"type":        "string",
						"description": "The session identifier used with generate_roast",
						"default":     "default",
					},
				},
			},
		},
	}
}

// Handlers contains tool handler implementations.
type Handlers struct {
	store *sessionStore
	log   *slog.Logger
}

// NewHandlers creates tool handlers.
func NewHandlers(store *sessionStore, logger *slog.Logger) *Handlers {
	return &Handlers{store: store, log: logger}
}

// HandleGenerateRoast runs one message through a session's engine.
func (h *Handlers) HandleGenerateRoast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.generate_roast")
	defer span.End()

	message := mcp.ParseString(req, "message", "")
	sessionID := mcp.ParseString(req, "session_id", "default")
	personaKey := mcp.ParseString(req, "persona", persona.KeySarcastic)
	intensityRaw := mcp.ParseString(req, "intensity", string(persona.DefaultIntensity))
	allowProfanity := mcp.ParseBoolean(req, "allow_profanity", false)

	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.String("persona", personaKey),
		attribute.String("intensity", intensityRaw),
	)

	if strings.TrimSpace(message) == "" {
		span.SetStatus(codes.Error, "missing message")
		return mcp.NewToolResultError("message is required"), nil
	}
	if _, err := persona.Lookup(personaKey); err != nil {
		span.SetStatus(codes.Error, "unknown persona")
		return mcp.NewToolResultError(err.Error()), nil
	}
	intensity, err := persona.ParseIntensity(intensityRaw)
	if err != nil {
		span.SetStatus(codes.Error, "unknown intensity")
		return mcp.NewToolResultError(err.Error()), nil
	}

	settings := prompt.Settings{
		Persona:        personaKey,
		Intensity:      intensity,
		AllowProfanity: allowProfanity,
	}

	sess := h.store.sessionFor(sessionID, settings, h.log)

	sess.mu.Lock()
	reply, err := sess.engine.GenerateReply(ctx, message)
	sess.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate roast: %v", err)), nil
	}

	span.SetAttributes(attribute.Int("reply_length", len(reply)))
	h.log.InfoContext(ctx, "roast generated", "session_id", sessionID, "persona", personaKey)

	return jsonResult(map[string]any{
		"reply":      reply,
		"session_id": sessionID,
		"persona":    personaKey,
		"intensity":  string(intensity),
	})
}

// HandleListPersonas returns the catalog.
func (h *Handlers) HandleListPersonas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.list_personas")
	defer span.End()

	profiles := persona.All()
	out := make([]map[string]any, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, map[string]any{
			"key":         p.Key,
			"name":        p.DisplayName,
			"description": p.Description,
			"traits":      p.Traits,
		})
	}

	return jsonResult(map[string]any{
		"personas":    out,
		"intensities": persona.Intensities(),
	})
}

// HandleGetTranscript returns a session's turns, oldest first.
func (h *Handlers) HandleGetTranscript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.get_transcript")
	defer span.End()

	sessionID := mcp.ParseString(req, "session_id", "default")
	span.SetAttributes(attribute.String("session_id", sessionID))

	turns := h.store.transcript(sessionID)
	out := make([]map[string]any, 0, len(turns))
	for _, t := range turns {
		out = append(out, map[string]any{
			"id":         t.ID,
			"sender":     string(t.Sender),
			"text":       t.Text,
			"created_at": t.CreatedAt,
		})
	}

	return jsonResult(map[string]any{
		"session_id": sessionID,
		"turns":      out,
		"count":      len(out),
	})
}

// sessionFor returns the session for an ID, replacing its engine
// wholesale when the requested settings differ from the ones it was
// built with. At capacity the least recently used session is evicted to
// make room, so a long-lived server keeps accepting new sessions.
func (s *sessionStore) sessionFor(sessionID string, settings prompt.Settings, logger *slog.Logger) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := fmt.Sprintf("%s/%s/%t", settings.Persona, settings.Intensity, settings.AllowProfanity)
	if sess, ok := s.sessions[sessionID]; ok && sess.fingerprint == fp {
		sess.lastUsed = time.Now()
		return sess
	}

	if _, ok := s.sessions[sessionID]; !ok && len(s.sessions) >= s.max {
		s.evictOldest()
	}

	engine := roast.New(roast.Config{
		Settings:  settings,
		Chain:     provider.Chain(settings, credentials(), offline.NewEngine()),
		Analytics: analytics.NewSlogEmitter(logger),
		Logger:    logger,
	})
	sess := &session{engine: engine, fingerprint: fp, lastUsed: time.Now()}
	s.sessions[sessionID] = sess
	return sess
}

// evictOldest drops the least recently used session. Caller holds s.mu.
func (s *sessionStore) evictOldest() {
	var victim string
	var oldest time.Time
	for id, sess := range s.sessions {
		if victim == "" || sess.lastUsed.Before(oldest) {
			victim, oldest = id, sess.lastUsed
		}
	}
	if victim != "" {
		delete(s.sessions, victim)
	}
}

func (s *sessionStore) transcript(sessionID string) []roast.Turn {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Window().Turns()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
