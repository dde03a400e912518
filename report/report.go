// Package report prints errors for the user
package report

import (
	"errors"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/studytrack/studytrack/auth"
	"github.com/studytrack/studytrack/internal/osutil"
	"github.com/studytrack/studytrack/tracker"
)

// Error prints err to w with a hint on what to do next where one exists.
// logFile is where the details of failed store operations were logged.
func Error(w io.Writer, err error, logFile string) {
	pterm.Error.WithWriter(w).Println(err)

	switch {
	case errors.Is(err, tracker.ErrStoreOperation) && logFile != "":
		pterm.Info.WithWriter(w).Printfln("See %s for details", logFile)
	case errors.Is(err, auth.ErrNotAuthenticated):
		pterm.Info.WithWriter(w).Println("Sign in with: studytrack login --email you@example.com")
	}
}

// Quit prints err and exits with osutil.ExitError.
func Quit(w io.Writer, err error, logFile string) {
	Error(w, err, logFile)
	os.Exit(int(osutil.ExitError))
}
