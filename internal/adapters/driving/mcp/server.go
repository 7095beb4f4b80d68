package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/logger"
)

// Version is reported to clients during initialisation.
const Version = "0.1.0"

const instructions = `Content for the ShubhRaaj Interiors website.
Read sitecms://snapshot for everything, or sitecms://status to see which
sections were saved only locally. Edits go to the content API first and
fall back to the local cache when it is unreachable; a later pull replaces
local-only edits with the server copy.`

// Server exposes site content as MCP resources and tools.
type Server struct {
	ports  *Ports
	server *mcp.Server
	log    zerolog.Logger
}

// NewServer registers every tool and resource over ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "sitecms", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		log: logger.WithComponent("mcp"),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Handler serves the streamable HTTP transport. Every session shares one server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.server }, nil)
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debug().Msg("serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
