package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/studytrack/studytrack/internal/timeutil"
)

// EnvPrefix is prepended to config keys to form the names of the
// environment variables that override them (e.g. STUDYTRACK_FOCUS_DURATION).
const EnvPrefix = "STUDYTRACK"

const (
	keyFocusDuration        = "focus.duration"
	keyFocusMessage         = "focus.message"
	keyFocusColor           = "focus.color"
	keyBreakDuration        = "break.duration"
	keyBreakMessage         = "break.message"
	keyBreakColor           = "break.color"
	keyAutoStartBreak       = "settings.auto_start_break"
	keySound                = "settings.sound"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyStatsPeriod          = "settings.stats_period"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does not
// exist. Environment variables take precedence over the file.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults. Values already present in c
// (from the first-run prompt) replace the built-in defaults.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyFocusDuration, "25m")
	v.SetDefault(keyFocusMessage, "Focus on your task")
	v.SetDefault(keyFocusColor, "#B0DB43")
	v.SetDefault(keyBreakDuration, "5m")
	v.SetDefault(keyBreakMessage, "Take a breather")
	v.SetDefault(keyBreakColor, "#12EAEA")
	v.SetDefault(keyAutoStartBreak, false)
	v.SetDefault(keySound, "")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyStatsPeriod, string(timeutil.Period7Days))
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)

	// a zero break is a valid answer, so the focus duration tells whether
	// the prompt ran
	if c.Focus.Duration > 0 {
		v.SetDefault(keyFocusDuration, c.Focus.Duration.String())
		v.SetDefault(keyBreakDuration, c.Break.Duration.String())
		v.SetDefault(keyAutoStartBreak, c.Settings.AutoStartBreak)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	err := v.Unmarshal(c)
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	return loadDurations(v, c)
}

// loadDurations handles parsing duration strings from Viper.
func loadDurations(v *viper.Viper, c *Config) error {
	focus, err := parseDuration(v.GetString(keyFocusDuration))
	if err != nil {
		return errInvalidConfigDuration.Fmt(keyFocusDuration, err)
	}

	brk, err := parseDuration(v.GetString(keyBreakDuration))
	if err != nil {
		return errInvalidConfigDuration.Fmt(keyBreakDuration, err)
	}

	c.Focus.Duration = focus
	c.Break.Duration = brk

	return nil
}

// parseDuration accepts Go duration strings (25m, 1h30m) or a bare number of
// minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
