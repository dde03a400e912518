package timer

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completions struct {
	got []Completion
}

func (c *completions) record(done Completion) {
	c.got = append(c.got, done)
}

func TestCountdownCompletesAfterExactlyNTicks(t *testing.T) {
	for _, n := range []int{1, 2, 5, 60, 1500} {
		var rec completions

		c := NewCountdown(Settings{FocusSeconds: n}, rec.record)
		c.Start()

		for i := 1; i < n; i++ {
			require.False(t, c.Tick(), "completed early after %d of %d ticks", i, n)
		}

		assert.True(t, c.Tick())
		require.Len(t, rec.got, 1)

		// an idle countdown ignores further ticks
		assert.Equal(t, 0, c.Advance(10))
		assert.Len(t, rec.got, 1)
	}
}

func TestCountdownIgnoresTicksWhileIdleOrPaused(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 3}, nil)

	c.Advance(5)
	assert.Equal(t, 3, c.State().Remaining)

	c.Start()
	c.Tick()
	c.Pause()
	c.Advance(5)

	assert.Equal(t, 2, c.State().Remaining)
	assert.True(t, c.State().Paused)

	c.Resume()
	assert.Equal(t, 1, c.Advance(2))
}

func TestFocusWithoutBreakGoesIdle(t *testing.T) {
	var rec completions

	c := NewCountdown(Settings{FocusSeconds: 2, BreakSeconds: 0, AutoStartBreak: true}, rec.record)
	c.Start()
	c.Advance(2)

	want := State{Mode: Focus, Remaining: 2, Total: 2, Sessions: 1}

	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, rec.got, 1)
	assert.Equal(t, Focus, rec.got[0].Finished)
	assert.Equal(t, want, rec.got[0].Next)
}

func TestFocusToBreakTransition(t *testing.T) {
	testCases := []struct {
		name      string
		autoStart bool
		want      State
	}{
		{
			name: "break waits to be started",
			want: State{TaskID: "t1", Mode: Break, Remaining: 3, Total: 3, Sessions: 1},
		},
		{
			name:      "break starts automatically",
			autoStart: true,
			want: State{
				TaskID:    "t1",
				Mode:      Break,
				Remaining: 3,
				Total:     3,
				Sessions:  1,
				Active:    true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCountdown(Settings{
				TaskID:         "t1",
				FocusSeconds:   2,
				BreakSeconds:   3,
				AutoStartBreak: tc.autoStart,
			}, nil)

			c.Start()
			c.Advance(2)

			if diff := cmp.Diff(tc.want, c.State()); diff != "" {
				t.Fatalf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBreakCompletionReturnsToIdleFocus(t *testing.T) {
	var rec completions

	c := NewCountdown(Settings{FocusSeconds: 2, BreakSeconds: 1, AutoStartBreak: true}, rec.record)
	c.Start()

	assert.Equal(t, 2, c.Advance(3))

	require.Len(t, rec.got, 2)
	assert.Equal(t, Break, rec.got[1].Finished)

	s := c.State()
	assert.Equal(t, Focus, s.Mode)
	assert.True(t, s.Idle())
	assert.Equal(t, 2, s.Remaining)
	assert.Equal(t, 1, s.Sessions)
}

func TestToggle(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 10}, nil)

	c.Toggle()
	assert.True(t, c.State().Running())

	c.Toggle()
	assert.True(t, c.State().Paused)

	c.Toggle()
	assert.True(t, c.State().Running())
}

func TestStartWithoutDuration(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 5}, nil)

	assert.True(t, c.SwitchMode(Break))
	c.Start()

	assert.True(t, c.State().Idle())
}

func TestSwitchModeOnlyWhenNotRunning(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 5, BreakSeconds: 2}, nil)

	c.Start()
	assert.False(t, c.SwitchMode(Break))
	assert.Equal(t, Focus, c.State().Mode)

	c.Pause()
	assert.True(t, c.SwitchMode(Break))

	s := c.State()
	assert.Equal(t, Break, s.Mode)
	assert.Equal(t, 2, s.Remaining)
	assert.False(t, s.Active)
}

func TestResetKeepsMode(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 5, BreakSeconds: 2}, nil)

	c.SwitchMode(Break)
	c.Start()
	c.Tick()
	c.Reset()

	s := c.State()
	assert.Equal(t, Break, s.Mode)
	assert.Equal(t, 2, s.Remaining)
	assert.True(t, s.Idle())
}

func TestSkip(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 1, BreakSeconds: 60, AutoStartBreak: true}, nil)

	assert.False(t, c.Skip())

	c.Start()
	c.Tick()
	require.Equal(t, Break, c.State().Mode)

	assert.True(t, c.Skip())
	assert.Equal(t, Focus, c.State().Mode)
	assert.True(t, c.State().Idle())
}

func TestSetDurations(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 5, BreakSeconds: 2}, nil)

	c.Start()
	c.SetDurations(10, 0)

	s := c.State()
	assert.True(t, s.Idle())
	assert.Equal(t, 10, s.Remaining)
	assert.Equal(t, 0, c.Settings().BreakSeconds)
}

func TestCompletionRecordsStartTime(t *testing.T) {
	var rec completions

	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	c := NewCountdown(Settings{FocusSeconds: 1}, rec.record)
	c.now = func() time.Time { return start }

	c.Start()
	c.Tick()

	require.Len(t, rec.got, 1)
	assert.Equal(t, start, rec.got[0].StartedAt)
}

func TestRun(t *testing.T) {
	var rec completions

	c := NewCountdown(Settings{FocusSeconds: 3, BreakSeconds: 2, AutoStartBreak: true}, rec.record)
	c.Start()

	ticks := make(chan time.Time, 10)
	for range 10 {
		ticks <- time.Time{}
	}

	require.NoError(t, c.Run(context.Background(), ticks))

	assert.Len(t, rec.got, 2)
	assert.True(t, c.State().Idle())
	assert.Len(t, ticks, 5)
}

func TestRunStopsWithContext(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 3}, nil)
	c.Start()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, make(chan time.Time))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunOnIdleCountdownReturnsImmediately(t *testing.T) {
	c := NewCountdown(Settings{FocusSeconds: 3}, nil)

	assert.NoError(t, c.Run(context.Background(), nil))
}
