package store

import "log/slog"

// subscriberBuffer is the number of events a subscriber can fall behind by
// before further events are dropped.
const subscriberBuffer = 16

// Op is the kind of change applied to a document.
type Op string

const (
	OpPut    Op = "put"
	OpDelete Op = "delete"
)

// Event describes a committed change to a document.
type Event struct {
	Collection Collection
	Op         Op
	ID         string
	UserID     string
}

type subscriber struct {
	ch     chan Event
	userID string
}

// Subscribe registers for change events on documents owned by userID. Events
// are delivered after the transaction that produced them commits. A
// subscriber that does not keep up misses events instead of blocking writers.
func (c *Client) Subscribe(userID string) (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	s := &subscriber{
		ch:     make(chan Event, subscriberBuffer),
		userID: userID,
	}

	c.subs[id] = s

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if _, ok := c.subs[id]; ok {
			close(s.ch)
			delete(c.subs, id)
		}
	}

	return s.ch, cancel
}

// publish fans events out to the subscribers of their owners.
func (c *Client) publish(events ...Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range events {
		for _, s := range c.subs {
			if s.userID != ev.UserID {
				continue
			}

			select {
			case s.ch <- ev:
			default:
				slog.Warn(
					"dropping store event for slow subscriber",
					slog.String("collection", string(ev.Collection)),
					slog.String("id", ev.ID),
				)
			}
		}
	}
}
