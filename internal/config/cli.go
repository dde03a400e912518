package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Focus          string
	Break          string
	Sound          string
	SessionCmd     string
	TaskID         string
	AutoStartBreak bool
	DisableNotify  bool
	Complete       bool
	Plain          bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Focus:          ctx.String("focus"),
			Break:          ctx.String("break"),
			Sound:          ctx.String("sound"),
			SessionCmd:     ctx.String("session-cmd"),
			TaskID:         ctx.String("task"),
			AutoStartBreak: ctx.Bool("auto-start-break"),
			DisableNotify:  ctx.Bool("disable-notification"),
			Complete:       ctx.Bool("complete"),
			Plain:          ctx.Bool("plain"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Focus != "" {
		dur, err := parseDuration(opts.Focus)
		if err != nil {
			return errInvalidCLIDuration.Fmt("focus", err)
		}

		c.Focus.Duration = dur
		c.CLI.Focus = &dur
	}

	if opts.Break != "" {
		dur, err := parseDuration(opts.Break)
		if err != nil {
			return errInvalidCLIDuration.Fmt("break", err)
		}

		c.Break.Duration = dur
		c.CLI.Break = &dur
	}

	if opts.AutoStartBreak {
		c.Settings.AutoStartBreak = true
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	switch opts.Sound {
	case "":
	case "off":
		c.Settings.Sound = ""
	default:
		c.Settings.Sound = opts.Sound
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	c.CLI.TaskID = strings.TrimSpace(opts.TaskID)
	c.CLI.Complete = opts.Complete
	c.CLI.Plain = opts.Plain

	return nil
}
