package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == TransportHTTP {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}
	logger.InfoContext(ctx, "Config: log_level", "value", s.LogLevel)

	logger.InfoContext(ctx, "Config: backend.source", "value", s.Backend.Source)
	switch s.Backend.Source {
	case SourceHTTP:
		logger.InfoContext(ctx, "Config: backend.base_url", "value", s.Backend.BaseURL)
		logger.InfoContext(ctx, "Config: backend.timeout", "value", s.Backend.Timeout)
	case SourceFile:
		logger.InfoContext(ctx, "Config: backend.file", "value", s.Backend.File)
	}
	logger.InfoContext(ctx, "Config: backend.content_cache_size", "value", s.Backend.ContentCacheSize)

	if s.Library.RefreshInterval > 0 {
		logger.InfoContext(ctx, "Config: library.refresh_interval", "value", s.Library.RefreshInterval)
	} else {
		logger.InfoContext(ctx, "Config: library.refresh_interval", "value", "disabled")
	}
	logger.InfoContext(ctx, "Config: library.max_search_results", "value", s.Library.MaxSearchResults)
}

// SettingsLogValue returns a slog.Value for Settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.String("log_level", s.LogLevel),
		slog.Group("backend",
			slog.String("source", s.Backend.Source),
			slog.String("base_url", s.Backend.BaseURL),
			slog.String("file", s.Backend.File),
			slog.Duration("timeout", s.Backend.Timeout),
			slog.Int("content_cache_size", s.Backend.ContentCacheSize),
		),
		slog.Group("library",
			slog.Duration("refresh_interval", s.Library.RefreshInterval),
			slog.Int("max_search_results", s.Library.MaxSearchResults),
		),
	)
}
