package app

import (
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/timeutil"
)

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Mirror log records to stderr at debug level",
	}

	focusFlag = &cli.StringFlag{
		Name:    "focus",
		Aliases: []string{"f"},
		Usage:   "Focus duration (e.g. 25m, 1h30m or 25 for minutes)",
	}

	breakFlag = &cli.StringFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break duration (e.g. 5m). Use 0 to skip breaks",
	}

	autoStartBreakFlag = &cli.BoolFlag{
		Name:  "auto-start-break",
		Usage: "Start the break as soon as a focus countdown ends",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Id (or unique id prefix) of the task to focus on",
	}

	completeFlag = &cli.BoolFlag{
		Name:    "complete",
		Aliases: []string{"c"},
		Usage:   "Mark the task as done when the first focus countdown ends",
	}

	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Print the countdown as plain lines instead of the interactive interface",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a countdown ends",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Audio file (mp3, ogg, flac or wav) to play when a countdown ends. Disable sound by setting to 'off'",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each countdown",
	}

	timerFlags = []cli.Flag{
		focusFlag,
		breakFlag,
		autoStartBreakFlag,
		taskFlag,
		completeFlag,
		plainFlag,
		disableNotificationFlag,
		soundFlag,
		sessionCmdFlag,
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Scheduled day (e.g. 2024-01-02, tomorrow, next monday)",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "Short description of the subject",
	}

	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "New title",
	}

	subjectFlag = &cli.StringFlag{
		Name:    "subject",
		Aliases: []string{"s"},
		Usage:   "Id (or unique id prefix) of the subject",
	}

	focusMinutesFlag = &cli.IntFlag{
		Name:    "focus",
		Aliases: []string{"f"},
		Usage:   "Focus duration in minutes",
	}

	breakMinutesFlag = &cli.IntFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break duration in minutes",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage: "Reporting period: " + periodList() +
			" (defaults to settings.stats_period)",
	}
)

func periodList() string {
	var s string

	for i, p := range timeutil.PeriodCollection {
		if i > 0 {
			s += ", "
		}

		s += string(p)
	}

	return s
}
