package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/FahmidKDAU/kyo-document-control/internal/backend"
	"github.com/FahmidKDAU/kyo-document-control/internal/config"
	"github.com/FahmidKDAU/kyo-document-control/internal/library"
	mcputil "github.com/FahmidKDAU/kyo-document-control/internal/mcp"
	"github.com/FahmidKDAU/kyo-document-control/internal/metrics"
)

// ServerName is reported to MCP clients.
const ServerName = "kyo-docs"

// Components are the long-lived parts of a running server.
type Components struct {
	MCP     *mcp.Server
	Library *library.Service
	Metrics *metrics.Metrics
}

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartHTTPServer   func(context.Context, *Components, *config.Settings) error
	CreateServer      func(context.Context, *config.Settings, string) (*Components, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:    config.LoadSettingsWithFlags,
		ValidSettings:   config.ValidateSettings,
		StartHTTPServer: StartHTTPServer,
		CreateServer:    CreateServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	level, err := config.ParseLogLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting kyo-docs server", "version", version)
	config.Log(settings)

	components, cleanup, err := params.CreateServer(ctx, settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Start server
	if settings.Transport == config.TransportStdio {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return components.MCP.Run(ctx, transport)
	}

	slog.Info("Starting HTTP server", "host", settings.Host, "port", settings.Port)
	return params.StartHTTPServer(ctx, components, settings)
}

// CreateServer builds the backend client, loads the document library and
// creates the MCP server with registered tools. A failed initial load is
// logged and the server starts with whatever was fetched.
func CreateServer(ctx context.Context, settings *config.Settings, version string) (*Components, func(), error) {
	m := metrics.New()

	client, err := NewBackendClient(settings.Backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	client = backend.NewCachingClient(client, settings.Backend.ContentCacheSize, m)

	lib, err := library.NewService(client, library.Options{
		MaxSearchResults: settings.Library.MaxSearchResults,
		Observer:         m,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create document library: %w", err)
	}

	if err := lib.Load(ctx); err != nil {
		slog.Error("Initial document load incomplete", "error", err)
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		lib.Run(refreshCtx, settings.Library.RefreshInterval)
	}()

	cleanup := func() {
		cancel()
		<-done
		if err := lib.Close(); err != nil {
			slog.Error("Failed to close document library", "error", err)
		}
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:    ServerName,
		Version: version,
		Library: lib,
	})

	return &Components{MCP: server, Library: lib, Metrics: m}, cleanup, nil
}

// NewBackendClient creates the client for the configured backend source.
func NewBackendClient(settings config.BackendSettings) (backend.Client, error) {
	switch settings.Source {
	case config.SourceHTTP:
		return backend.NewHTTPClient(settings.BaseURL, settings.Timeout), nil
	case config.SourceFile:
		client, err := backend.NewFileClient(settings.File)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend source %q", settings.Source)
	}
}
