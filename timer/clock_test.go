package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatchUpCountsWholeSeconds(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	cu := catchUp{}
	cu.reset(t0)

	assert.Equal(t, 0, cu.ticks(t0.Add(900*time.Millisecond)))
	assert.Equal(t, 1, cu.ticks(t0.Add(1100*time.Millisecond)))
	// a late reading catches up on every missed second
	assert.Equal(t, 3, cu.ticks(t0.Add(4500*time.Millisecond)))
	// the half second left over is not lost
	assert.Equal(t, 1, cu.ticks(t0.Add(5*time.Second)))
	assert.Equal(t, 0, cu.ticks(t0.Add(4*time.Second)))
}

func TestCatchUpZeroReference(t *testing.T) {
	var cu catchUp

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, cu.ticks(now))
	assert.Equal(t, 2, cu.ticks(now.Add(2*time.Second)))
}

func TestCatchUpTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	src := make(chan time.Time)

	out := catchUpTicks(ctx, src, t0)

	go func() {
		src <- t0.Add(3 * time.Second)
		close(src)
	}()

	var got int
	for range out {
		got++
	}

	assert.Equal(t, 3, got)
}
