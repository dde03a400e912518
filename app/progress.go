package app

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
	"github.com/studytrack/studytrack/internal/ui"
	"github.com/studytrack/studytrack/stats"
	"github.com/studytrack/studytrack/streak"
)

// statsAction reports progress over the selected period.
func statsAction(ctx *cli.Context, e *env, user *models.User) error {
	period := e.cfg.Settings.StatsPeriod

	if ctx.IsSet("period") {
		period = timeutil.Period(ctx.String("period"))

		if _, ok := timeutil.Range[period]; !ok {
			return errUnknownPeriod.Fmt(period, periodList())
		}
	}

	report, err := stats.Load(e.tracker, user, period, e.now())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return stats.JSON(config.Stdout, report)
	}

	stats.Show(config.Stdout, report)

	return nil
}

func streakAction(ctx *cli.Context, e *env, user *models.User) error {
	rec := user.Streak

	if ctx.Bool("json") {
		return printJSON(config.Stdout, struct {
			models.Streak
			Displayed int `json:"displayed_streak"`
		}{rec, streak.Displayed(rec, e.now())})
	}

	last := rec.LastActiveDate
	if last == "" {
		last = "never"
	}

	fmt.Fprintln(config.Stdout, "Current streak:", ui.Green(streak.Displayed(rec, e.now())))
	fmt.Fprintln(config.Stdout, "Longest streak:", ui.Green(rec.Longest))
	fmt.Fprintln(config.Stdout, "Last active:", ui.Highlight(last))

	return nil
}

// pomodoroAction shows the default durations of the user or saves new ones.
func pomodoroAction(ctx *cli.Context, e *env, user *models.User) error {
	cfg := user.Pomodoro

	if !ctx.IsSet("focus") && !ctx.IsSet("break") {
		fmt.Fprintf(
			config.Stdout,
			"Focus: %s\nBreak: %s\n",
			ui.Green(fmt.Sprintf("%d minutes", cfg.FocusDuration)),
			ui.Green(fmt.Sprintf("%d minutes", cfg.BreakDuration)),
		)

		return nil
	}

	if ctx.IsSet("focus") {
		cfg.FocusDuration = ctx.Int("focus")
	}

	if ctx.IsSet("break") {
		cfg.BreakDuration = ctx.Int("break")
	}

	err := e.tracker.SavePomodoroConfig(user.ID, cfg)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln(
		"Saved defaults: %dm focus, %dm break",
		cfg.FocusDuration,
		cfg.BreakDuration,
	)

	return nil
}
