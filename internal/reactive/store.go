package reactive

import (
	"sort"
	"sync"
)

// Store is a thread-safe holder of an immutable snapshot of type S.
//
// S should be a value type whose slices and maps are treated as read-only
// once published. Mutators copy what they change.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	version uint64 // bumped on every publication
	subs    map[uint64]*subscriber[S]
	nextID  uint64
	closed  bool
}

// subscriber delivers snapshots to fn in version order. A snapshot older
// than one already handed to fn is dropped.
type subscriber[S any] struct {
	fn      func(S)
	mu      sync.Mutex
	seen    uint64
	started bool
}

func (sub *subscriber[S]) deliver(v S, version uint64) {
	sub.mu.Lock()
	if sub.started && version <= sub.seen {
		sub.mu.Unlock()
		return
	}
	sub.started = true
	sub.seen = version
	sub.mu.Unlock()
	sub.fn(v)
}

// New creates a store holding initial.
func New[S any](initial S) *Store[S] {
	return &Store[S]{
		state: initial,
		subs:  make(map[uint64]*subscriber[S]),
	}
}

// Get returns the current snapshot.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the snapshot and publishes it.
func (s *Store[S]) Set(next S) {
	s.Mutate(func(S) (S, bool) { return next, true })
}

// Update replaces the snapshot with fn(current) and publishes it.
func (s *Store[S]) Update(fn func(S) S) {
	s.Mutate(func(cur S) (S, bool) { return fn(cur), true })
}

// Mutate applies fn to the current snapshot. When fn reports changed=false
// the snapshot is left as it was and nothing is published.
// Returns the changed flag reported by fn.
func (s *Store[S]) Mutate(fn func(S) (S, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.state)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state = next
	s.version++
	version := s.version
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(next, version)
	}
	return true
}

// Subscribe registers fn and immediately calls it with the current snapshot.
// The returned function removes the subscription; calling it more than once
// is harmless.
//
// Callbacks run outside the store lock, so they may read or mutate the store.
// Each subscriber sees snapshots in publication order: when a concurrent
// mutation has already handed fn a newer snapshot, the older one (including
// the initial one) is skipped. Callbacks for different publications may
// still run concurrently on different goroutines.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		cur := s.state
		s.mu.Unlock()
		fn(cur)
		return func() {}
	}
	id := s.nextID
	s.nextID++
	sub := &subscriber[S]{fn: fn}
	s.subs[id] = sub
	cur, version := s.state, s.version
	s.mu.Unlock()

	sub.deliver(cur, version)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store[S]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close drops every subscriber. The store keeps accepting mutations but no
// longer publishes them.
func (s *Store[S]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[uint64]*subscriber[S])
}

// subscribersLocked returns subscribers ordered by registration.
// Caller must hold s.mu.
func (s *Store[S]) subscribersLocked() []*subscriber[S] {
	if len(s.subs) == 0 {
		return nil
	}
	keys := make([]uint64, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]*subscriber[S], len(keys))
	for i, k := range keys {
		out[i] = s.subs[k]
	}
	return out
}
