// Package mcpserver exposes roast generation to MCP agent hosts over
// streamable HTTP.
package mcpserver

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/apresai/roastbot/internal/keystore"
	"github.com/apresai/roastbot/internal/provider"
	"github.com/apresai/roastbot/internal/roast"
)

// Config holds server configuration.
type Config struct {
	Port         int
	MaxSessions  int
	SecretPrefix string // e.g. "/roastbot/prod/"
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		Port:         8000,
		MaxSessions:  256,
		SecretPrefix: envOr("SECRET_PREFIX", ""),
	}
}

// Server is the MCP server for roast generation. It keeps one engine per
// caller-supplied session ID so transcripts survive across tool calls.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	handlers *Handlers
	log      *slog.Logger
}

// session pairs an engine with the settings fingerprint it was built
// from, so changed settings replace the engine wholesale. The mutex
// serializes tool calls against the engine: one message is processed
// end-to-end before the next, even when the HTTP host fires concurrent
// calls at the same session ID.
type session struct {
	mu          sync.Mutex
	engine      *roast.Engine
	fingerprint string
	lastUsed    time.Time
}

// sessionStore is the state shared between concurrent tool calls. The
// store lock guards the map; each engine is guarded by its session's
// own mutex.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	max      int
}

func newSessionStore(max int) *sessionStore {
	return &sessionStore{sessions: make(map[string]*session), max: max}
}

// New creates and configures the MCP server.
func New(cfg Config, logger *slog.Logger) *Server {
	handlers := NewHandlers(newSessionStore(cfg.MaxSessions), logger)

	mcpServer := server.NewMCPServer(
		"roastbot",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools := ToolDefs()
	mcpServer.AddTool(tools[0], handlers.HandleGenerateRoast)
	mcpServer.AddTool(tools[1], handlers.HandleListPersonas)
	mcpServer.AddTool(tools[2], handlers.HandleGetTranscript)

	return &Server{
		cfg:      cfg,
		mcp:      mcpServer,
		handlers: handlers,
		log:      logger,
	}
}

// Start runs the HTTP MCP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("Starting MCP server", "addr", addr)

	httpServer := server.NewStreamableHTTPServer(s.mcp,
		server.WithStateLess(true),
	)
	return httpServer.Start(addr)
}

// credentials resolves backend keys from the environment at session
// construction time, after any Secrets Manager fill has run.
func credentials() provider.Credentials {
	return keystore.Load()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
