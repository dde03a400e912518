package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/studytrack/studytrack/auth"
	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/logger"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/osutil"
	"github.com/studytrack/studytrack/internal/pathutil"
	"github.com/studytrack/studytrack/internal/ui"
	"github.com/studytrack/studytrack/store"
	"github.com/studytrack/studytrack/timer"
	"github.com/studytrack/studytrack/tracker"
)

const (
	envNoColor           = "NO_COLOR"
	envStudytrackNoColor = "STUDYTRACK_NO_COLOR"
)

// logCloser is the rotating log file opened by beforeAction.
var logCloser io.Closer

// env holds the stores an action works with.
type env struct {
	cfg     *config.Config
	db      *store.Client
	auth    *auth.Service
	tracker *tracker.Tracker
	now     func() time.Time
}

func (e *env) Close() error {
	return e.db.Close()
}

// loadConfig builds the configuration from the config file and the
// environment. extra options run before the config file is read.
func loadConfig(extra ...config.Option) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	opts := []config.Option{
		config.WithPaths(configPath, pathutil.DBFilePath(), pathutil.LogFilePath()),
	}

	opts = append(opts, extra...)
	opts = append(opts, config.WithViperConfig(configPath))

	return config.New(opts...)
}

// openEnv opens the database described by cfg.
func openEnv(cfg *config.Config) (*env, error) {
	db, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return nil, err
	}

	a := auth.New(db, os.Getenv(pathutil.EnvVar))
	a.Defaults = models.PomodoroConfig{
		FocusDuration: cfg.FocusMinutes(),
		BreakDuration: cfg.BreakMinutes(),
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return &env{
		cfg:     cfg,
		db:      db,
		auth:    a,
		tracker: tracker.New(db),
		now:     time.Now,
	}, nil
}

// withEnv wraps an action that needs the database.
func withEnv(fn func(ctx *cli.Context, e *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		e, err := openEnv(cfg)
		if err != nil {
			return err
		}

		defer e.Close()

		return fn(ctx, e)
	}
}

// withUser wraps an action that needs a signed-in user.
func withUser(
	fn func(ctx *cli.Context, e *env, user *models.User) error,
) cli.ActionFunc {
	return withEnv(func(ctx *cli.Context, e *env) error {
		user, err := e.auth.Current()
		if err != nil {
			return err
		}

		return fn(ctx, e, user)
	})
}

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// make sure the file exists before it is opened
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.System.ConfigPath)

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

// configShowAction prints the effective configuration.
func configShowAction(_ *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, err := cfg.YAML()
	if err != nil {
		return err
	}

	fmt.Fprintf(config.Stdout, "# %s\n%s", cfg.System.ConfigPath, b)

	return nil
}

// defaultAction starts the focus timer.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(
		config.WithPromptConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	e, err := openEnv(cfg)
	if err != nil {
		return err
	}

	defer e.Close()

	user, err := e.auth.Current()
	if err != nil {
		return err
	}

	var task *models.Task

	if cfg.CLI.TaskID != "" {
		task, err = e.tracker.Task(user.ID, cfg.CLI.TaskID)
		if err != nil {
			return err
		}
	}

	t, err := timer.New(timer.Opts{
		Config: cfg,
		DB:     e.db,
		User:   user,
		Task:   task,
	})
	if err != nil {
		return err
	}

	slog.Info(
		"starting timer",
		slog.String("user_id", user.ID),
		slog.Bool("plain", cfg.CLI.Plain),
		slog.Any("state", t.State()),
	)

	if cfg.CLI.Plain {
		sigCtx, stop := signal.NotifyContext(
			ctx.Context,
			os.Interrupt,
			syscall.SIGTERM,
		)
		defer stop()

		return t.RunPlain(sigCtx, config.Stdin, config.Stdout)
	}

	return t.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	err := config.LoadDotEnv()
	if err != nil {
		return err
	}

	err = pathutil.Initialize()
	if err != nil {
		return err
	}

	logCloser, err = logger.Init(logger.Config{
		Stderr:  config.Stderr,
		LogFile: pathutil.LogFilePath(),
		Debug:   ctx.Bool("debug"),
	})
	if err != nil {
		return err
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envStudytrackNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	slog.DebugContext(ctx.Context, "starting studytrack", slog.Any("args", ctx.Args().Slice()))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting studytrack")

	if logCloser == nil {
		return nil
	}

	err := logCloser.Close()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}

	return nil
}
