package timer

import (
	"context"
	"sync"
	"time"
)

// Mode is the kind of countdown.
type Mode string

const (
	Focus Mode = "focus"
	Break Mode = "break"
)

// State is a snapshot of a countdown.
type State struct {
	TaskID    string
	Mode      Mode
	Remaining int // seconds
	Total     int // seconds
	Sessions  int // completed focus countdowns
	Active    bool
	Paused    bool
}

// Running reports whether the countdown is being decremented.
func (s State) Running() bool {
	return s.Active && !s.Paused
}

// Idle reports whether the countdown has not been started.
func (s State) Idle() bool {
	return !s.Active
}

// Elapsed returns the number of seconds counted down so far.
func (s State) Elapsed() int {
	return s.Total - s.Remaining
}

// Settings are the durations a countdown alternates between.
type Settings struct {
	TaskID         string
	FocusSeconds   int
	BreakSeconds   int
	AutoStartBreak bool
}

// Completion describes a countdown that reached zero.
type Completion struct {
	// StartedAt is when the finished countdown was first started.
	StartedAt time.Time
	// Finished is the mode of the countdown that reached zero.
	Finished Mode
	// Next is the state the countdown moved to.
	Next State
}

// Countdown is the focus/break state machine. It is safe for concurrent use.
type Countdown struct {
	now        func() time.Time
	onComplete func(Completion)
	startedAt  time.Time
	settings   Settings
	state      State
	mu         sync.Mutex
}

// NewCountdown returns an idle focus countdown. onComplete, if not nil, is
// called once for every countdown that reaches zero, after the transition
// to the next mode.
func NewCountdown(settings Settings, onComplete func(Completion)) *Countdown {
	settings.FocusSeconds = max(settings.FocusSeconds, 0)
	settings.BreakSeconds = max(settings.BreakSeconds, 0)

	c := &Countdown{
		now:        time.Now,
		onComplete: onComplete,
		settings:   settings,
	}

	c.state = c.idleState(Focus)

	return c
}

func (c *Countdown) seconds(mode Mode) int {
	if mode == Break {
		return c.settings.BreakSeconds
	}

	return c.settings.FocusSeconds
}

// idleState returns a stopped countdown of mode with the full duration left.
func (c *Countdown) idleState(mode Mode) State {
	total := c.seconds(mode)

	return State{
		TaskID:    c.settings.TaskID,
		Mode:      mode,
		Remaining: total,
		Total:     total,
		Sessions:  c.state.Sessions,
	}
}

// State returns a snapshot of the countdown.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Settings returns the durations the countdown uses.
func (c *Countdown) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.settings
}

// Start begins an idle countdown. Countdowns with no duration cannot be
// started.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startLocked()
}

func (c *Countdown) startLocked() {
	if c.state.Active || c.state.Total <= 0 {
		return
	}

	if c.state.Remaining <= 0 {
		c.state.Remaining = c.state.Total
	}

	c.state.Active = true
	c.state.Paused = false
	c.startedAt = c.now()
}

// Pause freezes a running countdown.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running() {
		c.state.Paused = true
	}
}

// Resume continues a paused countdown.
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active && c.state.Paused {
		c.state.Paused = false
	}
}

// Toggle starts an idle countdown, pauses a running one and resumes a paused
// one.
func (c *Countdown) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.state.Active:
		c.startLocked()
	case c.state.Paused:
		c.state.Paused = false
	default:
		c.state.Paused = true
	}
}

// Reset stops the countdown and restores the full duration of the current
// mode.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.idleState(c.state.Mode)
}

// SwitchMode moves a countdown that is not running to the idle state of
// mode. It reports whether the switch happened.
func (c *Countdown) SwitchMode(mode Mode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running() || (mode != Focus && mode != Break) {
		return false
	}

	c.state = c.idleState(mode)

	return true
}

// Skip ends a break early and returns to an idle focus countdown. It reports
// whether a break was skipped.
func (c *Countdown) Skip() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Mode != Break {
		return false
	}

	c.state = c.idleState(Focus)

	return true
}

// SetDurations replaces the focus and break durations. The countdown stops
// and restarts from the new duration of its current mode.
func (c *Countdown) SetDurations(focusSeconds, breakSeconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.FocusSeconds = max(focusSeconds, 0)
	c.settings.BreakSeconds = max(breakSeconds, 0)
	c.state = c.idleState(c.state.Mode)
}

// Tick counts down one second if the countdown is running. It reports
// whether the countdown reached zero on this tick.
func (c *Countdown) Tick() bool {
	c.mu.Lock()

	if !c.state.Running() {
		c.mu.Unlock()
		return false
	}

	c.state.Remaining--

	if c.state.Remaining > 0 {
		c.mu.Unlock()
		return false
	}

	done := Completion{
		StartedAt: c.startedAt,
		Finished:  c.state.Mode,
	}

	c.transitionLocked()

	done.Next = c.state
	onComplete := c.onComplete

	c.mu.Unlock()

	if onComplete != nil {
		onComplete(done)
	}

	return true
}

// transitionLocked moves a countdown that reached zero to the next mode. A
// finished focus countdown leads to a break only if the break has a
// duration. A finished break always leads to an idle focus countdown.
func (c *Countdown) transitionLocked() {
	if c.state.Mode == Break {
		c.state = c.idleState(Focus)
		return
	}

	c.state.Sessions++

	if c.settings.BreakSeconds <= 0 {
		c.state = c.idleState(Focus)
		return
	}

	c.state = c.idleState(Break)

	if c.settings.AutoStartBreak {
		c.startLocked()
	}
}

// Advance applies n ticks and returns the completions they caused.
func (c *Countdown) Advance(n int) int {
	var completed int

	for range n {
		if c.Tick() {
			completed++
		}
	}

	return completed
}

// Run drives the countdown from ticks until it goes idle, ticks is closed or
// ctx is done.
func (c *Countdown) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		if c.State().Idle() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}

			c.Tick()
		}
	}
}
