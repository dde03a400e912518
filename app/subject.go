package app

import (
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/timeutil"
)

// parseDate reads a day given on the command line. An empty string yields
// nil.
func parseDate(s string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	t, err := timeutil.FromStr(s, now)
	if err != nil {
		return nil, errInvalidDate.Wrap(err)
	}

	day := timeutil.RoundToStart(t)

	return &day, nil
}

// firstArg returns the first positional argument or an error naming what is
// missing.
func firstArg(ctx *cli.Context, what string) (string, error) {
	arg := strings.TrimSpace(ctx.Args().First())
	if arg == "" {
		return "", errMissingArg.Fmt(what, ctx.Command.HelpName)
	}

	return arg, nil
}

func subjectAddAction(ctx *cli.Context, e *env, user *models.User) error {
	title := strings.Join(ctx.Args().Slice(), " ")

	date, err := parseDate(ctx.String("date"), e.now())
	if err != nil {
		return err
	}

	subject, err := e.tracker.CreateSubject(
		user.ID,
		title,
		ctx.String("description"),
		date,
	)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Added subject %q (%s)", subject.Title, shortID(subject.ID))

	return nil
}

func subjectListAction(ctx *cli.Context, e *env, user *models.User) error {
	var (
		subjects []*models.Subject
		err      error
	)

	if ctx.IsSet("date") {
		var day *time.Time

		day, err = parseDate(ctx.String("date"), e.now())
		if err != nil {
			return err
		}

		subjects, err = e.tracker.SubjectsOn(user.ID, *day)
	} else {
		subjects, err = e.tracker.Subjects(user.ID)
	}

	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		if subjects == nil {
			subjects = []*models.Subject{}
		}

		return printJSON(config.Stdout, subjects)
	}

	if len(subjects) == 0 {
		pterm.Info.WithWriter(config.Stdout).Println(noSubjectsMsg)
		return nil
	}

	printSubjectsTable(config.Stdout, subjects)

	return nil
}

func subjectDeleteAction(ctx *cli.Context, e *env, user *models.User) error {
	id, err := firstArg(ctx, "subject id")
	if err != nil {
		return err
	}

	subject, err := e.tracker.Subject(user.ID, id)
	if err != nil {
		return err
	}

	ok, err := confirmDelete(
		"Delete subject "+subject.Title+" and all of its tasks?",
		ctx.Bool("yes"),
	)
	if err != nil || !ok {
		return err
	}

	n, err := e.tracker.DeleteSubject(user.ID, subject.ID)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Deleted subject %q and %d task(s)", subject.Title, n)

	return nil
}
