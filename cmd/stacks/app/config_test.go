package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/agentstation/stacks/pkg/errors"
)

// isolate points HOME and the working directory at an empty temp dir and
// clears the environment variables the config reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{
		"STACKS_VERBOSE", "STACKS_QUIET", "STACKS_NO_COLOR", "NO_COLOR", "STACKS_FORMAT",
		"STACKS_DATA_DIR", "STACKS_QUARANTINE", "STACKS_LOG_LEVEL", "LOG_LEVEL",
		"STACKS_LOG_FORMAT", "STACKS_LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

// TestLoadConfig verifies defaults when no source sets anything.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Quarantine {
		t.Error("Quarantine should default to true")
	}
	if config.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", config.LogFormat)
	}
	if config.Format != "" {
		t.Errorf("Format = %q, want empty", config.Format)
	}
	if config.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", config.DataDir)
	}
	if config.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", config.ConfigFile)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	dir := isolate(t)

	t.Setenv("STACKS_DATA_DIR", dir)
	t.Setenv("STACKS_FORMAT", "JSON")
	t.Setenv("STACKS_QUARANTINE", "false")
	t.Setenv("STACKS_VERBOSE", "true")
	t.Setenv("LOG_LEVEL", "error")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", config.DataDir, dir)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.Quarantine {
		t.Error("STACKS_QUARANTINE=false not applied")
	}
	if !config.Verbose {
		t.Error("STACKS_VERBOSE not loaded")
	}
	if config.EnvLogLevel != "error" {
		t.Errorf("EnvLogLevel = %q, want error", config.EnvLogLevel)
	}
	if config.LogLevel != "" {
		t.Errorf("LogLevel = %q, want empty (flag only)", config.LogLevel)
	}
}

// TestConfig_File verifies the config file in the working directory is read.
func TestConfig_File(t *testing.T) {
	dir := isolate(t)

	content := "data_dir: /srv/library\nformat: yaml\nquarantine: false\nlog_level: warn\n"
	if err := os.WriteFile(filepath.Join(dir, ".stacks.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != "/srv/library" {
		t.Errorf("DataDir = %q, want /srv/library", config.DataDir)
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", config.Format)
	}
	if config.Quarantine {
		t.Error("quarantine: false not applied")
	}
	if config.EnvLogLevel != "warn" {
		t.Errorf("EnvLogLevel = %q, want warn", config.EnvLogLevel)
	}
	if filepath.Base(config.ConfigFile) != ".stacks.yaml" {
		t.Errorf("ConfigFile = %q, want .stacks.yaml", config.ConfigFile)
	}

	// Environment beats the config file
	t.Setenv("STACKS_FORMAT", "table")
	config, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Format != "table" {
		t.Errorf("Format = %q, want table from environment", config.Format)
	}
}

// TestConfig_DotEnv verifies .env files in the working directory are loaded.
func TestConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() { os.Unsetenv("STACKS_LOG_FILE") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STACKS_LOG_FILE=from-env\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte("STACKS_LOG_FILE=from-local\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.LogFile != "from-local" {
		t.Errorf("LogFile = %q, want .env.local to win", config.LogFile)
	}
}

// TestLoadConfigFile verifies an explicit config file must exist.
func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)

	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("data_dir: books\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.DataDir != "books" {
		t.Errorf("DataDir = %q, want books", config.DataDir)
	}
}

// TestConfig_Validate verifies enumerated settings are checked.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "zero value", config: Config{}},
		{name: "all valid", config: Config{Format: "yaml", LogLevel: "debug", EnvLogLevel: "warn", LogFormat: "json"}},
		{name: "bad format", config: Config{Format: "xml"}, wantErr: true},
		{name: "bad log level", config: Config{LogLevel: "loud"}, wantErr: true},
		{name: "bad env log level", config: Config{EnvLogLevel: "loud"}, wantErr: true},
		{name: "bad log format", config: Config{LogFormat: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				var cfgErr *pkgerrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("Validate() = %v, want ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestLoadConfig_InvalidEnv verifies invalid values are rejected at load.
func TestLoadConfig_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("STACKS_FORMAT", "xml")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

// TestConfig_Paths verifies storage and log locations.
func TestConfig_Paths(t *testing.T) {
	dir := t.TempDir()

	config := &Config{DataDir: dir}
	storage, err := config.StorageDir()
	if err != nil {
		t.Fatalf("StorageDir() failed: %v", err)
	}
	if storage != dir {
		t.Errorf("StorageDir() = %q, want %q", storage, dir)
	}
	if got, want := config.LogPath(), filepath.Join(dir, "library.log"); got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}

	config.LogFile = "stderr"
	if got := config.LogPath(); got != "stderr" {
		t.Errorf("LogPath() = %q, want stderr", got)
	}

	config = &Config{}
	storage, err = config.StorageDir()
	if err != nil {
		t.Fatalf("StorageDir() failed: %v", err)
	}
	if !filepath.IsAbs(storage) {
		t.Errorf("StorageDir() = %q, want absolute executable dir", storage)
	}
}
