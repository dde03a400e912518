package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/timeutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Focus: config.SessionConfig{
			Message:  "Focus on your task",
			Color:    "#B0DB43",
			Duration: 25 * time.Minute,
		},
		Break: config.SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Duration: 5 * time.Minute,
		},
		Settings: config.SettingsConfig{
			StatsPeriod: timeutil.Period7Days,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
	}
}

const modifiedConfig = `focus:
    duration: 50m
    message: Deep work
    color: '#FF0000'
break:
    duration: 0
    message: Stretch
    color: '#00FF00'
settings:
    auto_start_break: true
    24hr_clock: true
    stats_period: 30days
notifications:
    enabled: false
display:
    dark_theme: false
`

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var written map[string]map[string]any

	require.NoError(t, yaml.Unmarshal(b, &written))
	assert.Equal(t, "25m", written["focus"]["duration"])
	assert.Equal(t, "#12EAEA", written["break"]["color"])
	assert.Equal(t, true, written["notifications"]["enabled"])
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte(modifiedConfig), 0o600))

	want := &config.Config{
		Focus: config.SessionConfig{
			Message:  "Deep work",
			Color:    "#FF0000",
			Duration: 50 * time.Minute,
		},
		Break: config.SessionConfig{
			Message:  "Stretch",
			Color:    "#00FF00",
			Duration: 0,
		},
		Settings: config.SettingsConfig{
			AutoStartBreak: true,
			TwentyFourHour: true,
			StatsPeriod:    timeutil.Period30Days,
		},
	}

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte(modifiedConfig), 0o600))

	t.Setenv("STUDYTRACK_FOCUS_DURATION", "40")
	t.Setenv("STUDYTRACK_FOCUS_MESSAGE", "From the environment")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 40*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, "From the environment", cfg.Focus.Message)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")

	require.NoError(
		t,
		os.WriteFile(envFile, []byte("STUDYTRACK_BREAK_DURATION=15m\n"), 0o600),
	)

	t.Setenv("STUDYTRACK_BREAK_DURATION", "")
	require.NoError(t, os.Unsetenv("STUDYTRACK_BREAK_DURATION"))

	require.NoError(t, config.LoadDotEnv(envFile, filepath.Join(dir, "missing")))
	assert.Equal(t, "15m", os.Getenv("STUDYTRACK_BREAK_DURATION"))

	cfg, err := config.New(
		config.WithViperConfig(filepath.Join(dir, "config.yml")),
	)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Break.Duration)
}

func newCLIContext(t *testing.T, strs map[string]string, bools ...string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("timer", flag.ContinueOnError)

	for _, name := range []string{"focus", "break", "sound", "session-cmd", "task"} {
		_ = f.String(name, "", "")
	}

	for _, name := range []string{"auto-start-break", "disable-notification", "complete", "plain"} {
		_ = f.Bool(name, false, "")
	}

	for k, v := range strs {
		require.NoError(t, f.Set(k, v))
	}

	for _, name := range bools {
		require.NoError(t, f.Set(name, "true"))
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestCLIOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	ctx := newCLIContext(t, map[string]string{
		"focus":       "45m",
		"break":       "10",
		"task":        " abc ",
		"session-cmd": "echo done",
	}, "auto-start-break", "disable-notification", "plain")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Focus.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Break.Duration)
	assert.True(t, cfg.Settings.AutoStartBreak)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "echo done", cfg.Settings.Cmd)
	assert.Equal(t, "abc", cfg.CLI.TaskID)
	assert.True(t, cfg.CLI.Plain)
	assert.False(t, cfg.CLI.Complete)
	require.NotNil(t, cfg.CLI.Focus)
	assert.Equal(t, 45*time.Minute, *cfg.CLI.Focus)
	require.NotNil(t, cfg.CLI.Break)
	assert.Equal(t, 10*time.Minute, *cfg.CLI.Break)
}

func TestCLIInvalidDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	ctx := newCLIContext(t, map[string]string{"focus": "soon"})

	_, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		modify  func(c *config.Config)
		name    string
		wantErr bool
	}{
		{
			name:   "defaults",
			modify: func(_ *config.Config) {},
		},
		{
			name:   "zero break",
			modify: func(c *config.Config) { c.Break.Duration = 0 },
		},
		{
			name:    "zero focus",
			modify:  func(c *config.Config) { c.Focus.Duration = 0 },
			wantErr: true,
		},
		{
			name:    "focus longer than twelve hours",
			modify:  func(c *config.Config) { c.Focus.Duration = 13 * time.Hour },
			wantErr: true,
		},
		{
			name:    "bad colour",
			modify:  func(c *config.Config) { c.Break.Color = "blue" },
			wantErr: true,
		},
		{
			name:    "empty message",
			modify:  func(c *config.Config) { c.Focus.Message = "  " },
			wantErr: true,
		},
		{
			name:    "unknown period",
			modify:  func(c *config.Config) { c.Settings.StatsPeriod = "fortnight" },
			wantErr: true,
		},
		{
			name:    "unsupported sound format",
			modify:  func(c *config.Config) { c.Settings.Sound = "bell.aac" },
			wantErr: true,
		},
		{
			name:    "missing sound file",
			modify:  func(c *config.Config) { c.Settings.Sound = "/nonexistent/bell.ogg" },
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestYAMLShowsDurationsAsStrings(t *testing.T) {
	b, err := defaultConfig().YAML()
	require.NoError(t, err)

	var shown map[string]map[string]any

	require.NoError(t, yaml.Unmarshal(b, &shown))
	assert.Equal(t, "25m0s", shown["focus"]["duration"])
	assert.Equal(t, "7days", shown["settings"]["stats_period"])
}

func TestMinutes(t *testing.T) {
	cfg := defaultConfig()
	cfg.Focus.Duration = 30 * time.Second
	cfg.Break.Duration = 90 * time.Second

	assert.Equal(t, 1, cfg.FocusMinutes())
	assert.Equal(t, 1, cfg.BreakMinutes())
}
