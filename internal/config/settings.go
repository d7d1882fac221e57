package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Transport constants
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Backend source constants
const (
	SourceHTTP = "http"
	SourceFile = "file"
)

// BackendSettings configuration for the document backend
type BackendSettings struct {
	Source           string        `mapstructure:"source"` // SourceHTTP or SourceFile
	BaseURL          string        `mapstructure:"base_url"`
	File             string        `mapstructure:"file"`
	Timeout          time.Duration `mapstructure:"timeout"`
	ContentCacheSize int           `mapstructure:"content_cache_size"`
}

// LibrarySettings configuration for the loaded document collection
type LibrarySettings struct {
	// RefreshInterval reloads the collection periodically. Zero loads once.
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	MaxSearchResults int           `mapstructure:"max_search_results"`
}

// Settings application settings
type Settings struct {
	Transport string          `mapstructure:"transport"`
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	LogLevel  string          `mapstructure:"log_level"`
	Backend   BackendSettings `mapstructure:"backend"`
	Library   LibrarySettings `mapstructure:"library"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", TransportHTTP)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")

	v.SetDefault("backend.source", SourceHTTP)
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.content_cache_size", 64)

	v.SetDefault("library.refresh_interval", time.Duration(0))
	v.SetDefault("library.max_search_results", 20)

	// Environment variables
	v.SetEnvPrefix("KYO_DOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("backend.source", "KYO_DOCS_BACKEND_SOURCE")
	_ = v.BindEnv("backend.base_url", "KYO_DOCS_BACKEND_BASE_URL")
	_ = v.BindEnv("backend.file", "KYO_DOCS_BACKEND_FILE")
	_ = v.BindEnv("backend.timeout", "KYO_DOCS_BACKEND_TIMEOUT")
	_ = v.BindEnv("backend.content_cache_size", "KYO_DOCS_BACKEND_CONTENT_CACHE_SIZE")
	_ = v.BindEnv("library.refresh_interval", "KYO_DOCS_LIBRARY_REFRESH_INTERVAL")
	_ = v.BindEnv("library.max_search_results", "KYO_DOCS_LIBRARY_MAX_SEARCH_RESULTS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

		_ = v.BindPFlag("backend.source", flags.Lookup("backend-source"))
		_ = v.BindPFlag("backend.base_url", flags.Lookup("backend-base-url"))
		_ = v.BindPFlag("backend.file", flags.Lookup("backend-file"))
		_ = v.BindPFlag("backend.timeout", flags.Lookup("backend-timeout"))
		_ = v.BindPFlag("backend.content_cache_size", flags.Lookup("backend-content-cache-size"))

		_ = v.BindPFlag("library.refresh_interval", flags.Lookup("library-refresh-interval"))
		_ = v.BindPFlag("library.max_search_results", flags.Lookup("library-max-search-results"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Transport = strings.ToLower(strings.TrimSpace(settings.Transport))
	settings.Backend.Source = strings.ToLower(strings.TrimSpace(settings.Backend.Source))
	settings.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(settings.Backend.BaseURL), "/")
	settings.Backend.File = expandHomeDir(strings.TrimSpace(settings.Backend.File))

	return &settings, nil
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings name an unknown transport or an incomplete backend.
func ValidateSettings(s *Settings) error {
	switch s.Transport {
	case TransportHTTP, TransportStdio:
		// valid
	default:
		return errors.New("transport must be 'http' or 'stdio', got: " + s.Transport)
	}

	if s.Transport == TransportHTTP && (s.Port <= 0 || s.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", s.Port)
	}

	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}

	if err := validateBackendSettings(&s.Backend); err != nil {
		return err
	}

	return validateLibrarySettings(&s.Library)
}

// validateBackendSettings validates the backend configuration
func validateBackendSettings(b *BackendSettings) error {
	switch b.Source {
	case SourceHTTP:
		if b.BaseURL == "" {
			return errors.New("backend-source 'http' requires backend-base-url")
		}
	case SourceFile:
		if b.File == "" {
			return errors.New("backend-source 'file' requires backend-file")
		}
	default:
		return errors.New("backend-source must be 'http' or 'file', got: " + b.Source)
	}

	if b.Timeout < 0 {
		return errors.New("backend-timeout cannot be negative")
	}

	if b.ContentCacheSize < 0 {
		return errors.New("backend-content-cache-size cannot be negative")
	}

	return nil
}

// validateLibrarySettings validates the library configuration
func validateLibrarySettings(l *LibrarySettings) error {
	if l.RefreshInterval < 0 {
		return errors.New("library-refresh-interval cannot be negative")
	}

	if l.MaxSearchResults <= 0 {
		return errors.New("library-max-search-results must be positive")
	}

	return nil
}

// ParseLogLevel maps a level name to a slog level. An empty name is info.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q: must be debug, info, warn or error", name)
	}
	return level, nil
}
