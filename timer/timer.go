// Package timer runs the focus/break countdown, either as an interactive
// terminal interface or as plain line output, and records finished focus
// countdowns as study sessions
package timer

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/store"
	"github.com/studytrack/studytrack/streak"
	"github.com/studytrack/studytrack/tracker"
)

const (
	padding  = 2
	maxWidth = 80
)

type (
	tickMsg time.Time

	storeEventMsg store.Event
)

// Opts holds what a Timer needs to run for a signed-in user.
type Opts struct {
	Config *config.Config
	DB     store.DB
	User   *models.User
	// Task is the task the countdowns are for. It may be nil.
	Task *models.Task
}

// Timer is the countdown of a signed-in user together with everything that
// reacts to it: session recording, notifications and the streak badge.
type Timer struct {
	cfg         *config.Config
	db          store.DB
	countdown   *Countdown
	rec         *recorder
	notifier    *Notifier
	now         func() time.Time
	onDone      func(Completion)
	events      <-chan store.Event
	unsubscribe func()
	clock       catchUp
	pending     []Completion
	styles      styles
	keys        keyMap
	status      string
	progress    progress.Model
	help        help.Model
	streak      int
}

// New prepares a timer for opts.User. The first focus countdown starts when
// the timer is run.
func New(opts Opts) (*Timer, error) {
	cfg := opts.Config

	if opts.Task != nil && opts.Task.Completed && cfg.CLI.Complete {
		return nil, errTaskCompleted.Fmt(opts.Task.Title)
	}

	t := &Timer{
		cfg: cfg,
		db:  opts.DB,
		now: time.Now,
		notifier: NewNotifier(
			cfg.Notifications.Enabled,
			cfg.Settings.Sound,
			cfg.Settings.Cmd,
		),
		styles: newStyles(cfg),
		keys:   defaultKeymap,
		help:   help.New(),
		progress: progress.New(
			progress.WithGradient(cfg.Focus.Color, cfg.Break.Color),
			progress.WithoutPercentage(),
		),
	}

	t.rec = &recorder{
		tracker:  tracker.New(opts.DB),
		user:     opts.User,
		task:     opts.Task,
		now:      func() time.Time { return t.now() },
		complete: cfg.CLI.Complete,
	}

	t.onDone = func(done Completion) {
		t.pending = append(t.pending, done)
	}

	t.countdown = NewCountdown(
		resolveSettings(cfg, opts.User, opts.Task),
		func(done Completion) { t.onDone(done) },
	)
	t.countdown.now = func() time.Time { return t.now() }

	t.events, t.unsubscribe = opts.DB.Subscribe(opts.User.ID)
	t.streak = streak.Displayed(opts.User.Streak, t.now())

	return t, nil
}

// resolveSettings picks the countdown durations. Durations given on the
// command line win over those of the task, which win over the profile
// defaults of the user.
func resolveSettings(
	cfg *config.Config,
	user *models.User,
	task *models.Task,
) Settings {
	focus := time.Duration(user.Pomodoro.FocusDuration) * time.Minute
	brk := time.Duration(user.Pomodoro.BreakDuration) * time.Minute

	if focus <= 0 {
		focus, brk = cfg.Focus.Duration, cfg.Break.Duration
	}

	var taskID string

	if task != nil {
		taskID = task.ID
		focus, brk = task.FocusDuration(), task.BreakDuration()
	}

	if cfg.CLI.Focus != nil {
		focus = *cfg.CLI.Focus
	}

	if cfg.CLI.Break != nil {
		brk = *cfg.CLI.Break
	}

	return Settings{
		TaskID:         taskID,
		FocusSeconds:   int(focus / time.Second),
		BreakSeconds:   int(brk / time.Second),
		AutoStartBreak: cfg.Settings.AutoStartBreak,
	}
}

// State returns the current countdown state.
func (t *Timer) State() State {
	return t.countdown.State()
}

// Close ends the store subscription of the timer.
func (t *Timer) Close() {
	t.unsubscribe()
}

// start begins an idle countdown and restarts the second counter.
func (t *Timer) start() {
	t.countdown.Start()
	t.clock.reset(t.now())
}

// Run starts the first focus countdown and the interactive interface. It
// blocks until the user quits.
func (t *Timer) Run() error {
	defer t.Close()

	t.start()

	_, err := tea.NewProgram(
		t,
		tea.WithInput(config.Stdin),
		tea.WithOutput(config.Stdout),
	).Run()

	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

// waitForEvent delivers the next store change as a message. Nothing is
// delivered once the subscription is closed.
func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}

		return storeEventMsg(ev)
	}
}

func (t *Timer) Init() tea.Cmd {
	return tea.Batch(tick(), waitForEvent(t.events))
}
