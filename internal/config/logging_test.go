package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	s := &Settings{
		Transport: TransportHTTP,
		Host:      "localhost",
		Port:      8080,
		Backend:   BackendSettings{Source: SourceHTTP, BaseURL: "http://docs"},
	}
	Log(s) // Should not panic
}

func TestLogWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: TransportStdio,
		Host:      "localhost",
		Port:      8080,
		Backend:   BackendSettings{Source: SourceFile, File: "/tmp/docs.yaml"},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	// stdio transport should not log host/port
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no 'host' in log output for stdio transport")
	}
	if !strings.Contains(output, "/tmp/docs.yaml") {
		t.Error("Expected backend file in log output")
	}
	if strings.Contains(output, "backend.base_url") {
		t.Error("Expected no base url in log output for file source")
	}
}

func TestLogWithLogger_HTTPTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: TransportHTTP,
		Host:      "localhost",
		Port:      8080,
		Backend:   BackendSettings{Source: SourceHTTP, BaseURL: "http://docs.internal", Timeout: 5 * time.Second},
		Library:   LibrarySettings{RefreshInterval: time.Minute, MaxSearchResults: 20},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "Config: host") {
		t.Error("Expected 'host' in log output for HTTP transport")
	}
	if !strings.Contains(output, "Config: port") {
		t.Error("Expected 'port' in log output for HTTP transport")
	}
	if !strings.Contains(output, "http://docs.internal") {
		t.Error("Expected backend base url in log output")
	}
	if !strings.Contains(output, "value=1m0s") {
		t.Errorf("Expected refresh interval in log output, got: %s", output)
	}
}

func TestLogWithLogger_RefreshDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogWithLogger(&Settings{Transport: TransportStdio}, logger)

	if !strings.Contains(buf.String(), "value=disabled") {
		t.Errorf("Expected disabled refresh in log output, got: %s", buf.String())
	}
}

func TestSettingsLogValue(t *testing.T) {
	s := Settings{
		Transport: TransportHTTP,
		Host:      "localhost",
		Port:      8080,
		Backend:   BackendSettings{Source: SourceHTTP, BaseURL: "http://docs"},
	}

	val := SettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}
