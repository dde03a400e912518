package timer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/store"
	"github.com/studytrack/studytrack/streak"
)

// handleTick applies every whole second that elapsed since the previous
// tick. A paused or idle countdown only moves the reference point so that
// time spent paused is never counted.
func (t *Timer) handleTick(now time.Time) tea.Cmd {
	if !t.countdown.State().Running() {
		t.clock.reset(now)
		return tick()
	}

	t.countdown.Advance(t.clock.ticks(now))

	return tea.Batch(tick(), t.handleCompletions())
}

// handleCompletions records the countdowns that finished since the last
// call and returns a command that notifies the user about them.
func (t *Timer) handleCompletions() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(t.pending))

	for _, done := range t.pending {
		notice, err := t.rec.record(done)
		if err != nil {
			t.status = t.styles.warn.Render("Unable to save the session: " + err.Error())
		} else if notice != "" {
			t.status = t.styles.notice.Render(notice)
		}

		cmds = append(cmds, t.notify(done))
	}

	t.pending = t.pending[:0]

	return tea.Batch(cmds...)
}

// notify runs the notifier outside the update loop since sounds and session
// commands can take a while.
func (t *Timer) notify(done Completion) tea.Cmd {
	message := t.cfg.Focus.Message
	if done.Finished == Focus {
		message = t.cfg.Break.Message
	}

	n := t.notifier

	return func() tea.Msg {
		n.Completed(done.Finished, done.Next.Sessions, message)
		return nil
	}
}

// handleStoreEvent refreshes the streak badge and the task when they change
// in the store.
func (t *Timer) handleStoreEvent(ev store.Event) {
	switch ev.Collection {
	case store.Users:
		user, err := t.db.GetUser(ev.ID)
		if err != nil {
			slog.Warn("unable to refresh user", slog.Any("error", err))
			return
		}

		t.rec.user = user
		t.streak = streak.Displayed(user.Streak, t.now())
		t.refreshDurations()

	case store.Tasks:
		task := t.rec.task
		if task == nil || task.ID != ev.ID {
			return
		}

		if ev.Op == store.OpDelete {
			t.status = t.styles.warn.Render(
				fmt.Sprintf("Task %q was deleted", task.Title),
			)

			return
		}

		updated, err := t.db.GetTask(ev.ID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				slog.Warn("unable to refresh task", slog.Any("error", err))
			}

			return
		}

		t.rec.task = updated
		t.refreshDurations()
	}
}

// refreshDurations applies changed profile or task durations to an idle
// countdown. A running or paused countdown keeps the durations it started
// with.
func (t *Timer) refreshDurations() {
	if !t.countdown.State().Idle() {
		return
	}

	want := resolveSettings(t.cfg, t.rec.user, t.rec.task)
	have := t.countdown.Settings()

	if want.FocusSeconds == have.FocusSeconds &&
		want.BreakSeconds == have.BreakSeconds {
		return
	}

	t.countdown.SetDurations(want.FocusSeconds, want.BreakSeconds)

	slog.Debug(
		"durations updated",
		slog.Int("focus_seconds", want.FocusSeconds),
		slog.Int("break_seconds", want.BreakSeconds),
	)
}

// toggleTask flips the completion of the timer's task.
func (t *Timer) toggleTask() {
	task := t.rec.task
	if task == nil {
		return
	}

	res, err := t.rec.tracker.ToggleTask(t.rec.user.ID, task.ID)
	if err != nil {
		t.status = t.styles.warn.Render(err.Error())
		return
	}

	t.rec.task = res.Task

	switch {
	case !res.Task.Completed:
		t.status = t.styles.notice.Render(
			fmt.Sprintf("Marked %q as not done", res.Task.Title),
		)
	case res.StreakErr != nil:
		t.status = t.styles.warn.Render(
			fmt.Sprintf("Completed %q, but your streak could not be updated", res.Task.Title),
		)
	default:
		t.status = t.styles.notice.Render(
			fmt.Sprintf("Completed %q (streak: %d)", res.Task.Title, res.Streak.Current),
		)
	}
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := t.countdown.State()

	switch {
	case key.Matches(msg, t.keys.Quit):
		t.Close()

		return t, tea.Quit

	case key.Matches(msg, t.keys.Enter):
		if state.Idle() {
			t.start()
		}

	case key.Matches(msg, t.keys.Toggle):
		t.countdown.Toggle()
		t.clock.reset(t.now())

	case key.Matches(msg, t.keys.Reset):
		t.countdown.Reset()

	case key.Matches(msg, t.keys.Skip):
		t.countdown.Skip()

	case key.Matches(msg, t.keys.Switch):
		next := Break
		if state.Mode == Break {
			next = Focus
		}

		t.countdown.SwitchMode(next)

	case key.Matches(msg, t.keys.Done):
		t.toggleTask()

	case key.Matches(msg, t.keys.Help):
		t.help.ShowAll = !t.help.ShowAll
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return t, t.handleTick(time.Time(msg))

	case storeEventMsg:
		t.handleStoreEvent(store.Event(msg))

		return t, waitForEvent(t.events)

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		t.help.Width = msg.Width

		return t, nil
	}

	return t, nil
}
