package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/FahmidKDAU/kyo-document-control/internal/library"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// Library serves the document tools. No tools are registered when nil.
	Library *library.Service
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Library != nil {
		library.RegisterTools(s, cfg.Library)
	}

	return s
}
