package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/stacks/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration
// and returns the closer for the log file it opened.
// Log level precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. LOG_LEVEL environment variable (or log_level in the config file)
//  5. Default (info)
//
// If the log file cannot be opened the logger writes to stderr instead.
func NewLogger(config *Config) (zerolog.Logger, io.Closer) {
	level := determineLogLevel(config)

	logConfig := &logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogPath(),
		TimeFormat: "rfc3339",
		NoColor:    config.NoColor,
		AddCaller:  level == "debug" || level == "trace",
	}

	logger, closer, err := logging.Open(logConfig)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("output", logConfig.Output).
			Msg("Cannot open log file, logging to stderr")
		logConfig.Output = "stderr"
		logger, closer, _ = logging.Open(logConfig)
	}
	return logger, closer
}

// determineLogLevel determines the log level using clear precedence rules.
func determineLogLevel(config *Config) string {
	// 1. Explicit --log-level always wins
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			logging.Warn().
				Str("level", config.LogLevel).
				Str("using", validated).
				Msg("Invalid log level")
		}
		return validated
	}

	// 2. Conflicting boolean flags resolve to the more restrictive level
	if config.Verbose && config.Quiet {
		logging.Warn().Msg("Both --verbose and --quiet specified, using --quiet")
		return "warn"
	}

	// 3. Boolean shortcuts
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	// 4. Environment variable or config file
	if config.EnvLogLevel != "" {
		return validateLogLevel(config.EnvLogLevel)
	}

	// 5. Default
	return "info"
}

// validateLogLevel validates a log level string and returns a valid level.
// If the input is invalid, returns "info" as a safe default.
func validateLogLevel(level string) string {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[level] {
		return level
	}

	return "info"
}
