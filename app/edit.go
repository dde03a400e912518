package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/tracker"
)

func stringFlag(ctx *cli.Context, name string) *string {
	if !ctx.IsSet(name) {
		return nil
	}

	s := ctx.String(name)

	return &s
}

func intFlag(ctx *cli.Context, name string) *int {
	if !ctx.IsSet(name) {
		return nil
	}

	n := ctx.Int(name)

	return &n
}

// subjectEditAction changes the fields of a subject given on the command
// line.
func subjectEditAction(ctx *cli.Context, e *env, user *models.User) error {
	id, err := firstArg(ctx, "subject id")
	if err != nil {
		return err
	}

	upd := tracker.SubjectUpdate{
		Title:       stringFlag(ctx, "title"),
		Description: stringFlag(ctx, "description"),
		ClearDate:   ctx.Bool("clear-date"),
	}

	if ctx.IsSet("date") {
		upd.ScheduledDate, err = parseDate(ctx.String("date"), e.now())
		if err != nil {
			return err
		}
	}

	if upd == (tracker.SubjectUpdate{}) {
		return errNothingToUpdate.Fmt("--title, --description, --date, --clear-date")
	}

	subject, err := e.tracker.UpdateSubject(user.ID, id, upd)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Updated subject %q", subject.Title)

	return nil
}

// taskEditAction changes the fields of a task given on the command line.
func taskEditAction(ctx *cli.Context, e *env, user *models.User) error {
	id, err := firstArg(ctx, "task id")
	if err != nil {
		return err
	}

	upd := tracker.TaskUpdate{
		Title:        stringFlag(ctx, "title"),
		SubjectID:    stringFlag(ctx, "subject"),
		FocusMinutes: intFlag(ctx, "focus"),
		BreakMinutes: intFlag(ctx, "break"),
	}

	if upd == (tracker.TaskUpdate{}) {
		return errNothingToUpdate.Fmt("--title, --subject, --focus, --break")
	}

	task, err := e.tracker.UpdateTask(user.ID, id, upd)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Updated task %q", task.Title)

	return nil
}
