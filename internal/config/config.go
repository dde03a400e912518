// Package config loads studytrack settings from the config file, the
// environment and command-line flags
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/studytrack/studytrack/internal/timeutil"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Focus         SessionConfig      `mapstructure:"focus"         yaml:"focus"`
		Break         SessionConfig      `mapstructure:"break"         yaml:"break"`
		Settings      SettingsConfig     `mapstructure:"settings"      yaml:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"       yaml:"display"`
		CLI           CLIConfig          `mapstructure:"-"             yaml:"-"`
		System        SystemConfig       `mapstructure:"-"             yaml:"-"`
	}

	// SessionConfig holds the settings of one countdown mode.
	SessionConfig struct {
		Message  string        `mapstructure:"message" yaml:"message"`
		Color    string        `mapstructure:"color"   yaml:"color"`
		Duration time.Duration `mapstructure:"-"       yaml:"duration"`
	}

	SettingsConfig struct {
		Sound          string          `mapstructure:"sound"            yaml:"sound"`
		Cmd            string          `mapstructure:"cmd"              yaml:"cmd"`
		StatsPeriod    timeutil.Period `mapstructure:"stats_period"     yaml:"stats_period"`
		AutoStartBreak bool            `mapstructure:"auto_start_break" yaml:"auto_start_break"`
		TwentyFourHour bool            `mapstructure:"24hr_clock"       yaml:"24hr_clock"`
	}

	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	}

	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme" yaml:"dark_theme"`
	}

	// CLIConfig holds options that only come from command-line flags.
	CLIConfig struct {
		// Focus and Break are set only if given on the command line, so that
		// they can take precedence over task and profile durations.
		Focus    *time.Duration
		Break    *time.Duration
		TaskID   string
		Complete bool
		Plain    bool
	}

	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// FocusMinutes returns the focus duration in whole minutes (at least one).
func (c *Config) FocusMinutes() int {
	return max(int(c.Focus.Duration/time.Minute), 1)
}

// BreakMinutes returns the break duration in whole minutes.
func (c *Config) BreakMinutes() int {
	return int(c.Break.Duration / time.Minute)
}

// New creates a new Config, applies the options in order and validates the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	slog.Debug("effective config", slog.String("dump", cfg.Dump()))

	return cfg, nil
}

// WithPaths records where the config file, the database and the log live.
func WithPaths(configPath, dbPath, logPath string) Option {
	return func(c *Config) error {
		if configPath == "" || dbPath == "" {
			return fmt.Errorf("missing config or database path")
		}

		c.System = SystemConfig{
			ConfigPath: configPath,
			DBPath:     dbPath,
			LogPath:    logPath,
		}

		return nil
	}
}
