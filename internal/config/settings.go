package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. REQSPEC_LOG_LEVEL.
const EnvPrefix = "REQSPEC"

// Defaults for settings not provided by flags or the environment.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultOutput    = "text"
)

// Settings are process-wide CLI options.
type Settings struct {
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
	LogFile   string
	NoColor   bool
	Verbose   bool
	Insecure  bool
	Output    string
}

// LoadSettings resolves settings from flags, REQSPEC_* environment
// variables and defaults, in that order of precedence. Flags that were
// not set on the command line yield to the environment.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-format", DefaultLogFormat)
	v.SetDefault("log-file", "")
	v.SetDefault("no-color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("insecure", false)
	v.SetDefault("output", DefaultOutput)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	s := &Settings{
		Timeout:   v.GetDuration("timeout"),
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString("log-level"))),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString("log-format"))),
		LogFile:   strings.TrimSpace(v.GetString("log-file")),
		NoColor:   v.GetBool("no-color"),
		Verbose:   v.GetBool("verbose"),
		Insecure:  v.GetBool("insecure"),
		Output:    strings.ToLower(strings.TrimSpace(v.GetString("output"))),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks setting values.
func (s *Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format '%s', must be one of: text, json", s.LogFormat)
	}
	switch s.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level '%s'", s.LogLevel)
	}
	return nil
}
