package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/FahmidKDAU/kyo-document-control/internal/config"
	"github.com/FahmidKDAU/kyo-document-control/internal/web"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 10 * time.Second

// StartHTTPServer serves the document API and the MCP SSE endpoint until ctx
// is done, then shuts down gracefully.
func StartHTTPServer(ctx context.Context, c *Components, settings *config.Settings) error {
	srv := NewHTTPServer(c, settings)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening (HTTP)", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewHTTPServer creates the HTTP server for the document API
func NewHTTPServer(c *Components, settings *config.Settings) *http.Server {
	opts := web.Options{
		Library: c.Library,
		Metrics: c.Metrics,
	}
	if c.MCP != nil {
		// Factory function returns the server instance for each request
		opts.MCP = mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
			return c.MCP
		}, nil)
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", settings.Host, settings.Port),
		Handler:           web.NewHandler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
