package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/ui"
	"github.com/studytrack/studytrack/streak"
)

// promptAccount asks for the name and email that are missing from the
// command line.
func promptAccount(name, email *string) error {
	var fields []huh.Field

	if *name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("Shown in your profile (optional)").
			Value(name))
	}

	fields = append(fields, huh.NewInput().
		Title("Email").
		Value(email).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("an email address is required")
			}

			return nil
		}))

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// loginAction signs a user in, creating the profile on first use.
func loginAction(ctx *cli.Context, e *env) error {
	name := ctx.String("name")
	email := ctx.String("email")

	if email == "" {
		err := promptAccount(&name, &email)
		if err != nil {
			return err
		}
	}

	user, err := e.auth.SignIn(name, email, ctx.String("photo"))
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("Signed in as %s <%s>", user.DisplayName, user.Email)

	return nil
}

func logoutAction(_ *cli.Context, e *env) error {
	err := e.auth.SignOut()
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Println("Signed out")

	return nil
}

func whoamiAction(_ *cli.Context, e *env, user *models.User) error {
	fmt.Fprintf(config.Stdout, "%s <%s>\n", ui.Highlight(user.DisplayName), user.Email)
	fmt.Fprintf(config.Stdout, "id: %s\n", user.ID)
	fmt.Fprintf(
		config.Stdout,
		"member since: %s\n",
		user.CreatedAt.Local().Format("January 02, 2006"),
	)

	if user.PhotoURL != "" {
		fmt.Fprintf(config.Stdout, "photo: %s\n", user.PhotoURL)
	}

	fmt.Fprintf(
		config.Stdout,
		"streak: %d (longest %d)\n",
		streak.Displayed(user.Streak, e.now()),
		user.Streak.Longest,
	)

	return nil
}
