package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/timeutil"
)

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	soundFormats = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateSessionConfig(c.Focus, "focus", false); err != nil {
		return err
	}

	if err := validateSessionConfig(c.Break, "break", true); err != nil {
		return err
	}

	return c.validateSettings()
}

// validateSessionConfig validates an individual SessionConfig. A zero
// duration is accepted only when allowZero is set.
func validateSessionConfig(
	sc SessionConfig,
	sessionType string,
	allowZero bool,
) error {
	zeroOK := allowZero && sc.Duration == 0

	if !zeroOK &&
		(sc.Duration < minSessionDuration || sc.Duration > maxSessionDuration) {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(sessionType)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(sessionType, sc.Color)
	}

	return nil
}

// validateSettings validates the SettingsConfig.
func (c *Config) validateSettings() error {
	if c.Settings.StatsPeriod != "" {
		if _, ok := timeutil.Range[c.Settings.StatsPeriod]; !ok {
			return errInvalidPeriod.Fmt(
				c.Settings.StatsPeriod,
				timeutil.PeriodCollection,
			)
		}
	}

	if c.Settings.Sound != "" {
		return validateSound(c.Settings.Sound)
	}

	return nil
}

// validateSound checks that a sound file exists and can be decoded.
func validateSound(sound string) error {
	ext := strings.ToLower(filepath.Ext(sound))

	if !slices.Contains(soundFormats, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(sound)
	if err != nil {
		return errUnknownSound.Wrap(err)
	}

	return nil
}
