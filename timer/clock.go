package timer

import (
	"context"
	"time"
)

// catchUp converts wall-clock readings into whole elapsed seconds so that a
// countdown does not drift when ticks arrive late or are dropped.
type catchUp struct {
	last time.Time
}

// reset makes now the reference point for the next reading.
func (c *catchUp) reset(now time.Time) {
	c.last = now
}

// ticks returns the number of whole seconds elapsed since the previous
// reading and moves the reference point forward by that amount. The
// fractional remainder carries over to the next reading.
func (c *catchUp) ticks(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	n := int(now.Sub(c.last) / time.Second)
	if n <= 0 {
		return 0
	}

	c.last = c.last.Add(time.Duration(n) * time.Second)

	return n
}

// catchUpTicks relays src as one value per elapsed second since start. It
// stops when src is closed or ctx is done.
func catchUpTicks(
	ctx context.Context,
	src <-chan time.Time,
	start time.Time,
) <-chan time.Time {
	out := make(chan time.Time)

	go func() {
		defer close(out)

		cu := catchUp{last: start}

		for {
			select {
			case <-ctx.Done():
				return
			case now, ok := <-src:
				if !ok {
					return
				}

				for range cu.ticks(now) {
					select {
					case out <- now:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}
