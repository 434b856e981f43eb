package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"vaults-mcp/internal/config"
	"vaults-mcp/internal/tools"
	"vaults-mcp/pkg/logging"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	sseEndpoint       = "/sse"
	messageEndpoint   = "/message"
	keepAliveInterval = 30 * time.Second
	shutdownTimeout   = 5 * time.Second
)

const instructions = `Tools for the Vaults platform: health and queue monitoring, tenant administration,
conversation search, Copilot analytics, exports, billing, onboarding and Microsoft Purview governance.
Every tool returns markdown text. Failed backend calls come back as error results.`

// Server exposes the tool catalog over MCP.
type Server struct {
	cfg      config.Config
	registry *tools.Registry
	mcp      *mcpserver.MCPServer

	mu        sync.Mutex
	sseServer *mcpserver.SSEServer
}

// New creates the MCP server and registers every tool of registry.
func New(cfg config.Config, registry *tools.Registry) *Server {
	mcp := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(instructions),
	)
	mcp.AddTools(registry.ServerTools()...)

	logging.Info("Server", "Initialized %s v%s with %d tools", cfg.ServerName, cfg.ServerVersion, registry.Len())

	return &Server{
		cfg:      cfg,
		registry: registry,
		mcp:      mcp,
	}
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve runs the configured transport until ctx is cancelled or the transport fails.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	switch s.cfg.Transport.Mode {
	case config.TransportSSE:
		return s.ServeSSE(ctx)
	case config.TransportStdio, "":
		return s.ServeStdio(ctx, in, out)
	default:
		return fmt.Errorf("unsupported transport %q", s.cfg.Transport.Mode)
	}
}

// ServeStdio reads MCP frames from in and writes replies to out. It returns nil at end of input.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(logging.StdLogger("Stdio", logging.LevelError))

	logging.Info("Server", "Serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// Addr returns the SSE listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Transport.Host, s.cfg.Transport.Port)
}

// BaseURL returns the URL SSE clients connect to.
func (s *Server) BaseURL() string {
	return "http://" + s.Addr()
}

// ServeSSE serves MCP over Server-Sent Events until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context) error {
	s.mu.Lock()
	if s.sseServer != nil {
		s.mu.Unlock()
		return fmt.Errorf("sse server already started")
	}
	sseServer := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL(s.BaseURL()),
		mcpserver.WithSSEEndpoint(sseEndpoint),
		mcpserver.WithMessageEndpoint(messageEndpoint),
		mcpserver.WithKeepAlive(true),
		mcpserver.WithKeepAliveInterval(keepAliveInterval),
	)
	s.sseServer = sseServer
	s.mu.Unlock()

	addr := s.Addr()
	logging.Info("Server", "Serving MCP over SSE on %s%s", s.BaseURL(), sseEndpoint)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		s.clearSSE()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("sse transport on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		return s.Stop(context.Background())
	}
}

// Stop shuts the SSE transport down. It is a no-op when SSE is not running.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	sseServer := s.sseServer
	s.sseServer = nil
	s.mu.Unlock()

	if sseServer == nil {
		return nil
	}

	logging.Info("Server", "Stopping SSE server")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server", err, "Error shutting down SSE server")
		return fmt.Errorf("shutting down sse server: %w", err)
	}
	return nil
}

func (s *Server) clearSSE() {
	s.mu.Lock()
	s.sseServer = nil
	s.mu.Unlock()
}
