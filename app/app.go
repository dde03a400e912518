// Package app wires the studytrack command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func subjectCommand() *cli.Command {
	return &cli.Command{
		Name:    "subject",
		Aliases: []string{"subjects"},
		Usage:   "Manage study subjects",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a subject",
				ArgsUsage: "TITLE",
				Flags:     []cli.Flag{descriptionFlag, dateFlag},
				Action:    withUser(subjectAddAction),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List subjects in natural title order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Only list subjects scheduled on this day (e.g. today)",
					},
					jsonFlag,
				},
				Action: withUser(subjectListAction),
			},
			{
				Name:      "edit",
				Usage:     "Change the title, description or scheduled day of a subject",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					titleFlag,
					descriptionFlag,
					dateFlag,
					&cli.BoolFlag{
						Name:  "clear-date",
						Usage: "Remove the scheduled day",
					},
				},
				Action: withUser(subjectEditAction),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a subject and all of its tasks",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{yesFlag},
				Action:    withUser(subjectDeleteAction),
			},
		},
	}
}

func taskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Aliases: []string{"tasks"},
		Usage:   "Manage the tasks of your subjects",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a task to a subject",
				ArgsUsage: "TITLE",
				Flags: []cli.Flag{
					subjectFlag,
					focusMinutesFlag,
					breakMinutesFlag,
				},
				Action: withUser(taskAddAction),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tasks, newest first",
				Flags: []cli.Flag{
					subjectFlag,
					&cli.BoolFlag{
						Name:  "pending",
						Usage: "Only list tasks that are not done",
					},
					jsonFlag,
				},
				Action: withUser(taskListAction),
			},
			{
				Name:      "edit",
				Usage:     "Change the title, subject or durations of a task",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					titleFlag,
					subjectFlag,
					focusMinutesFlag,
					breakMinutesFlag,
				},
				Action: withUser(taskEditAction),
			},
			{
				Name:      "done",
				Usage:     "Mark a task as done, or as not done if it is done already",
				ArgsUsage: "ID",
				Action:    withUser(taskDoneAction),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a task",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{yesFlag},
				Action:    withUser(taskDeleteAction),
			},
		},
	}
}

// Get retrieves the studytrack app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "studytrack",
		Usage: `
		studytrack organises your study subjects and tasks, runs a focus/break
		timer for them and tracks your progress and daily streaks.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "timer",
				Usage:  "Start the focus timer (the default command)",
				Flags:  timerFlags,
				Action: defaultAction,
			},
			{
				Name:  "login",
				Usage: "Sign in, creating your profile on first use",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Display name"},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "photo", Usage: "Profile photo URL"},
				},
				Action: withEnv(loginAction),
			},
			{
				Name:   "logout",
				Usage:  "Sign out",
				Action: withEnv(logoutAction),
			},
			{
				Name:   "whoami",
				Usage:  "Print the signed-in user",
				Action: withUser(whoamiAction),
			},
			subjectCommand(),
			taskCommand(),
			{
				Name:  "pomodoro",
				Usage: "Show or change your default focus and break minutes",
				Flags: []cli.Flag{
					focusMinutesFlag,
					breakMinutesFlag,
				},
				Action: withUser(pomodoroAction),
			},
			{
				Name:   "streak",
				Usage:  "Show your daily completion streak",
				Flags:  []cli.Flag{jsonFlag},
				Action: withUser(streakAction),
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with statistics about your tasks and focus
				sessions. Defaults to the period set in the config file`,
				Flags:  []cli.Flag{periodFlag, jsonFlag},
				Action: withUser(statsAction),
			},
			{
				Name:  "config",
				Usage: "Inspect the configuration",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the effective configuration",
						Action: configShowAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: append([]cli.Flag{
			noColorFlag,
			debugFlag,
		}, timerFlags...),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
