package app

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/stacks/internal/cmd/cmdutil"
	"github.com/agentstation/stacks/pkg/constants"
	"github.com/agentstation/stacks/pkg/errors"
	"github.com/agentstation/stacks/pkg/inventory"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml"`

	// Config file
	ConfigFile string

	// Storage configuration
	DataDir    string
	Quarantine bool

	// Logging configuration.
	// LogLevel is only set by the --log-level flag; EnvLogLevel comes from
	// LOG_LEVEL, STACKS_LOG_LEVEL or the config file and ranks below -v/-q.
	LogLevel    string `validate:"omitempty,oneof=trace debug info warn error"`
	EnvLogLevel string `validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat   string `validate:"omitempty,oneof=auto json console text"`
	LogFile     string
}

// Config keys as they appear in the config file. Environment variables use
// the STACKS_ prefix with upper case keys (STACKS_DATA_DIR).
const (
	keyVerbose    = "verbose"
	keyQuiet      = "quiet"
	keyNoColor    = "no_color"
	keyFormat     = "format"
	keyDataDir    = "data_dir"
	keyQuarantine = "quarantine"
	keyLogLevel   = "log_level"
	keyLogFormat  = "log_format"
	keyLogFile    = "log_file"
)

var validate = validator.New()

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by the root command)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.stacks.yaml or ./.stacks.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(newViper(), "")
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(newViper(), path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyQuarantine, true)
	v.SetDefault(keyLogFormat, "text")
	return v
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// LOG_LEVEL is accepted without the prefix as well
	if err := v.BindEnv(keyLogLevel, constants.EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind log level", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("file", "failed to parse config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool(keyVerbose),
		Quiet:   v.GetBool(keyQuiet),
		NoColor: v.GetBool(keyNoColor) || os.Getenv("NO_COLOR") != "",
		Format:  strings.ToLower(v.GetString(keyFormat)),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:    v.GetString(keyDataDir),
		Quarantine: v.GetBool(keyQuarantine),

		EnvLogLevel: strings.ToLower(v.GetString(keyLogLevel)),
		LogFormat:   strings.ToLower(v.GetString(keyLogFormat)),
		LogFile:     v.GetString(keyLogFile),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// UpdateFromFlags applies command-line flags that were explicitly set.
// changed holds the names of those flags.
func (c *Config) UpdateFromFlags(flags *cmdutil.GlobalFlags, changed map[string]string) {
	if _, ok := changed["verbose"]; ok {
		c.Verbose = flags.Verbose
	}
	if _, ok := changed["quiet"]; ok {
		c.Quiet = flags.Quiet
	}
	if _, ok := changed["no-color"]; ok {
		c.NoColor = flags.NoColor
	}
	if _, ok := changed["format"]; ok {
		c.Format = flags.Format
	}
	if _, ok := changed["log-level"]; ok {
		c.LogLevel = flags.LogLevel
	}
	if _, ok := changed["log-file"]; ok {
		c.LogFile = flags.LogFile
	}
	if _, ok := changed["data-dir"]; ok {
		c.DataDir = flags.DataDir
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewConfigError(strings.ToLower(fe.Field()),
				fmt.Sprintf("invalid value %q, must be one of: %s", fe.Value(), fe.Param()), err)
		}
		return errors.NewConfigError("", "invalid configuration", err)
	}
	return nil
}

// StorageDir returns the directory holding the storage file: the configured
// data directory or, by default, the directory of the running executable.
func (c *Config) StorageDir() (string, error) {
	if c.DataDir != "" {
		return filepath.Abs(c.DataDir)
	}
	return inventory.ExecutableDir()
}

// LogPath returns where the log is written. An unset log file means
// library.log beside the storage file.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir, err := c.StorageDir()
	if err != nil {
		return "stderr"
	}
	return filepath.Join(dir, constants.LogFileName)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

