package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration("timeout", DefaultTimeout, "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("log-format", DefaultLogFormat, "")
	fs.String("log-file", "", "")
	fs.Bool("no-color", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("insecure", false, "")
	return fs
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, s.Timeout)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, DefaultLogFormat, s.LogFormat)
	assert.False(t, s.NoColor)
	assert.False(t, s.Verbose)
}

func TestLoadSettings_Flags(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--timeout", "5s", "--log-level", "DEBUG", "-v", "--no-color"}))

	s, err := LoadSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Verbose)
	assert.True(t, s.NoColor)
}

func TestLoadSettings_EnvOverridesFlagDefaults(t *testing.T) {
	t.Setenv("REQSPEC_LOG_LEVEL", "error")
	t.Setenv("REQSPEC_LOG_FORMAT", "json")
	t.Setenv("REQSPEC_NO_COLOR", "true")

	fs := newFlagSet()
	require.NoError(t, fs.Parse(nil))

	s, err := LoadSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.True(t, s.NoColor)
}

func TestLoadSettings_FlagBeatsEnv(t *testing.T) {
	t.Setenv("REQSPEC_TIMEOUT", "1m")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--timeout", "2s"}))

	s, err := LoadSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.Timeout)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{name: "valid", settings: Settings{Timeout: time.Second, LogLevel: "info", LogFormat: "text"}},
		{name: "zero timeout", settings: Settings{LogLevel: "info", LogFormat: "text"}, wantErr: true},
		{name: "bad format", settings: Settings{Timeout: time.Second, LogLevel: "info", LogFormat: "xml"}, wantErr: true},
		{name: "bad level", settings: Settings{Timeout: time.Second, LogLevel: "loud", LogFormat: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
