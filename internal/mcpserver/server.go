// Package mcpserver exposes the tracker over the Model Context Protocol so
// agent tooling can create entities, manage relations, and pull insights. The
// tools are served over SSE/HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/relation"
)

// Version is the civicgraph MCP server version, matching the module.
const Version = "0.1.0"

// Server is the in-process MCP server. It registers tracker tools and serves
// them over SSE/HTTP.
type Server struct {
	repo   *entity.Repository
	engine *relation.Engine
	mcp    *mcp.Server
	port   int
	srv    *http.Server
	ln     net.Listener
}

// NewServer creates an MCP server over the given repository and relation
// engine.
func NewServer(repo *entity.Repository, engine *relation.Engine, port int) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "civicgraph",
			Version: Version,
		},
		nil,
	)
	s := &Server{
		repo:   repo,
		engine: engine,
		mcp:    mcpServer,
		port:   port,
	}
	s.registerTools()
	return s
}

// Start begins serving the MCP server over SSE/HTTP on the configured port.
// It returns once the listener is accepting connections.
func (s *Server) Start(ctx context.Context) error {
	handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("mcpserver: listen on port %d: %w", s.port, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: handler}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "civicgraph: serve error: %v\n", err)
		}
	}()
	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
