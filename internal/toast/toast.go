// Package toast implements the ephemeral notification queue.
//
// Toasts are kept in insertion order. Each has a generated id and an
// optional lifetime; Prune (or Run) drops toasts whose lifetime has elapsed.
package toast

import (
	"context"
	"time"

	"github.com/roach88/volt/internal/clock"
	"github.com/roach88/volt/internal/ids"
	"github.com/roach88/volt/internal/reactive"
)

// Kind is the visual category of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Default lifetimes applied by the convenience helpers.
const (
	DefaultSuccessDuration = 3000 * time.Millisecond
	DefaultErrorDuration   = 5000 * time.Millisecond
	DefaultInfoDuration    = 3000 * time.Millisecond
)

// Toast is one notification. A zero Duration never expires.
type Toast struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"type"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Expired reports whether the toast's lifetime has elapsed at now.
func (t Toast) Expired(now time.Time) bool {
	return t.Duration > 0 && !now.Before(t.CreatedAt.Add(t.Duration))
}

// Queue is the toast container.
type Queue struct {
	store *reactive.Store[[]Toast]
	ids   ids.Generator
	clock clock.Clock
}

// Option configures a Queue.
type Option func(*Queue)

// WithIDs overrides the id generator (defaults to UUIDv7).
func WithIDs(g ids.Generator) Option {
	return func(q *Queue) { q.ids = g }
}

// WithClock overrides the clock used for CreatedAt and expiry.
func WithClock(c clock.Clock) Option {
	return func(q *Queue) { q.clock = c }
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{store: reactive.New[[]Toast](nil)}
	for _, opt := range opts {
		opt(q)
	}
	q.ids = ids.OrDefault(q.ids)
	q.clock = clock.OrSystem(q.clock)
	return q
}

// Add appends a toast with a fresh id and returns that id. Any id already set
// on t is replaced.
func (q *Queue) Add(t Toast) string {
	t.ID = q.ids.Generate()
	t.CreatedAt = q.clock.Now()
	q.store.Update(func(cur []Toast) []Toast {
		next := make([]Toast, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, t)
	})
	return t.ID
}

// Remove drops the toast with the given id, if present.
func (q *Queue) Remove(id string) {
	q.store.Mutate(func(cur []Toast) ([]Toast, bool) {
		return filter(cur, func(t Toast) bool { return t.ID != id })
	})
}

// Success adds a success toast. A zero duration means DefaultSuccessDuration.
func (q *Queue) Success(message string, duration ...time.Duration) string {
	return q.Add(Toast{Kind: KindSuccess, Message: message, Duration: pick(duration, DefaultSuccessDuration)})
}

// Error adds an error toast. A zero duration means DefaultErrorDuration.
func (q *Queue) Error(message string, duration ...time.Duration) string {
	return q.Add(Toast{Kind: KindError, Message: message, Duration: pick(duration, DefaultErrorDuration)})
}

// Info adds an info toast. A zero duration means DefaultInfoDuration.
func (q *Queue) Info(message string, duration ...time.Duration) string {
	return q.Add(Toast{Kind: KindInfo, Message: message, Duration: pick(duration, DefaultInfoDuration)})
}

// Prune removes expired toasts and returns how many were dropped.
func (q *Queue) Prune() int {
	now := q.clock.Now()
	removed := 0
	q.store.Mutate(func(cur []Toast) ([]Toast, bool) {
		next, changed := filter(cur, func(t Toast) bool { return !t.Expired(now) })
		removed = len(cur) - len(next)
		return next, changed
	})
	return removed
}

// Run prunes every interval until ctx is cancelled.
func (q *Queue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.Prune()
		}
	}
}

// Clear drops every toast.
func (q *Queue) Clear() {
	q.store.Mutate(func(cur []Toast) ([]Toast, bool) {
		return nil, len(cur) > 0
	})
}

// Toasts returns the current toasts in insertion order.
func (q *Queue) Toasts() []Toast {
	return q.store.Get()
}

// Subscribe registers fn for every published snapshot.
func (q *Queue) Subscribe(fn func([]Toast)) (unsubscribe func()) {
	return q.store.Subscribe(fn)
}

// Close drops all subscribers.
func (q *Queue) Close() {
	q.store.Close()
}

func pick(d []time.Duration, def time.Duration) time.Duration {
	if len(d) > 0 && d[0] > 0 {
		return d[0]
	}
	return def
}

// filter keeps toasts for which keep returns true. The input is never
// modified; changed is false when nothing was dropped.
func filter(in []Toast, keep func(Toast) bool) (out []Toast, changed bool) {
	out = make([]Toast, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	if len(out) == len(in) {
		return in, false
	}
	return out, true
}
