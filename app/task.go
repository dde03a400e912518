package app

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/streak"
	"github.com/studytrack/studytrack/tracker"
)

func taskAddAction(ctx *cli.Context, e *env, user *models.User) error {
	subjectID := ctx.String("subject")
	if subjectID == "" {
		return errMissingArg.Fmt("--subject", ctx.Command.HelpName)
	}

	focus, brk := user.Pomodoro.FocusDuration, user.Pomodoro.BreakDuration

	if ctx.IsSet("focus") {
		focus = ctx.Int("focus")
	}

	if ctx.IsSet("break") {
		brk = ctx.Int("break")
	}

	task, err := e.tracker.CreateTask(
		user.ID,
		subjectID,
		strings.Join(ctx.Args().Slice(), " "),
		focus,
		brk,
	)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln(
		"Added task %q (%s): %dm focus, %dm break",
		task.Title,
		shortID(task.ID),
		task.FocusMinutes,
		task.BreakMinutes,
	)

	return nil
}

func taskListAction(ctx *cli.Context, e *env, user *models.User) error {
	tasks, err := e.tracker.Tasks(user.ID, ctx.String("subject"))
	if err != nil {
		return err
	}

	if ctx.Bool("pending") {
		pending := tasks[:0]

		for _, t := range tasks {
			if !t.Completed {
				pending = append(pending, t)
			}
		}

		tasks = pending
	}

	if ctx.Bool("json") {
		if tasks == nil {
			tasks = []*models.Task{}
		}

		return printJSON(config.Stdout, tasks)
	}

	if len(tasks) == 0 {
		pterm.Info.WithWriter(config.Stdout).Println(noTasksMsg)
		return nil
	}

	subjects, err := e.tracker.Subjects(user.ID)
	if err != nil {
		return err
	}

	titles := make(map[string]string, len(subjects))
	for _, s := range subjects {
		titles[s.ID] = s.Title
	}

	printTasksTable(config.Stdout, tasks, titles)

	return nil
}

// reportToggle prints the outcome of flipping the completion of a task.
func reportToggle(res *tracker.ToggleResult) {
	if !res.Task.Completed {
		pterm.Info.WithWriter(config.Stdout).Printfln("Marked %q as not done", res.Task.Title)
		return
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Completed %q", res.Task.Title)

	if res.StreakErr != nil {
		pterm.Warning.WithWriter(config.Stdout).Printfln("Your streak could not be updated: %v", res.StreakErr)
		return
	}

	switch res.Outcome {
	case streak.Incremented:
		pterm.Info.WithWriter(config.Stdout).Printfln("Streak extended to %d day(s)", res.Streak.Current)
	case streak.Reset:
		pterm.Info.WithWriter(config.Stdout).Printfln("New streak started: %d day(s)", res.Streak.Current)
	case streak.Unchanged:
	}
}

func taskDoneAction(ctx *cli.Context, e *env, user *models.User) error {
	id, err := firstArg(ctx, "task id")
	if err != nil {
		return err
	}

	res, err := e.tracker.ToggleTask(user.ID, id)
	if err != nil {
		return err
	}

	reportToggle(res)

	return nil
}

func taskDeleteAction(ctx *cli.Context, e *env, user *models.User) error {
	id, err := firstArg(ctx, "task id")
	if err != nil {
		return err
	}

	task, err := e.tracker.Task(user.ID, id)
	if err != nil {
		return err
	}

	ok, err := confirmDelete("Delete task "+task.Title+"?", ctx.Bool("yes"))
	if err != nil || !ok {
		return err
	}

	err = e.tracker.DeleteTask(user.ID, task.ID)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Deleted task %q", task.Title)

	return nil
}
