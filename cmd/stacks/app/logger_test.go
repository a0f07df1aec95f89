package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/pkg/logging"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when nothing set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "trace",
		},
		{
			name:     "both flags resolve to quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "environment used when no flags set",
			config:   &Config{EnvLogLevel: "error"},
			expected: "error",
		},
		{
			name:     "verbose beats environment",
			config:   &Config{EnvLogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "invalid explicit level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
		{
			name:     "invalid environment level falls back to info",
			config:   &Config{EnvLogLevel: "loud"},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := determineLogLevel(tt.config)
			if got != tt.expected {
				t.Errorf("determineLogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestNewLogger_File verifies the default log goes to library.log beside storage.
func TestNewLogger_File(t *testing.T) {
	dir := t.TempDir()
	config := &Config{DataDir: dir, LogFormat: "text"}

	logger, closer := NewLogger(config)
	logger.Info().Str("isbn", "111").Msg("Book added")
	logger.Debug().Msg("hidden at info")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "library.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Book added") || !strings.Contains(text, "isbn=111") {
		t.Errorf("log = %q, want message and field", text)
	}
	if strings.Contains(text, "hidden at info") {
		t.Error("debug entry written at info level")
	}
	if strings.Contains(text, "\x1b[") {
		t.Error("log file contains color codes")
	}

	// Appends across runs
	logger, closer = NewLogger(config)
	logger.Info().Msg("second run")
	_ = closer.Close()

	data, _ = os.ReadFile(filepath.Join(dir, "library.log"))
	if !strings.Contains(string(data), "Book added") || !strings.Contains(string(data), "second run") {
		t.Error("log file was truncated between runs")
	}
}

// TestNewLogger_Fallback verifies an unopenable log file falls back to stderr.
func TestNewLogger_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// A regular file where a directory is expected cannot be created under.
	original := *logging.Default()
	t.Cleanup(func() { *logging.Default() = original })
	var warnings bytes.Buffer
	*logging.Default() = zerolog.New(&warnings)

	config := &Config{LogFile: filepath.Join(blocker, "library.log")}
	_, closer := NewLogger(config)
	if closer == nil {
		t.Fatal("closer must never be nil")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if !strings.Contains(warnings.String(), "Cannot open log file") {
		t.Errorf("warnings = %q, want fallback warning", warnings.String())
	}
}
