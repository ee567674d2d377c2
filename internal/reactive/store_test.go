package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N     int
	Items []string
}

func TestStore_GetSet(t *testing.T) {
	s := New(counter{N: 1})
	assert.Equal(t, 1, s.Get().N)

	s.Set(counter{N: 5})
	assert.Equal(t, 5, s.Get().N)
}

func TestStore_SubscribeReceivesCurrentThenUpdates(t *testing.T) {
	s := New(counter{})
	var seen []int
	unsub := s.Subscribe(func(c counter) { seen = append(seen, c.N) })

	s.Update(func(c counter) counter { c.N++; return c })
	s.Update(func(c counter) counter { c.N++; return c })
	unsub()
	s.Update(func(c counter) counter { c.N++; return c })

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, s.Get().N)
}

func TestStore_UnsubscribeIdempotent(t *testing.T) {
	s := New(counter{})
	unsub := s.Subscribe(func(counter) {})
	require.Equal(t, 1, s.Subscribers())

	unsub()
	unsub()
	assert.Equal(t, 0, s.Subscribers())
}

func TestStore_MutateNoChangeDoesNotPublish(t *testing.T) {
	s := New(counter{Items: []string{"a"}})
	calls := 0
	s.Subscribe(func(counter) { calls++ })
	require.Equal(t, 1, calls)

	before := s.Get()
	changed := s.Mutate(func(c counter) (counter, bool) {
		c.N = 99
		return c, false
	})

	assert.False(t, changed)
	assert.Equal(t, 1, calls, "no-op mutation must not publish")
	assert.Equal(t, 0, s.Get().N)
	assert.Same(t, &before.Items[0], &s.Get().Items[0], "snapshot must be left untouched")
}

func TestStore_SubscribersInRegistrationOrder(t *testing.T) {
	s := New(counter{})
	var order []string
	s.Subscribe(func(counter) { order = append(order, "first") })
	s.Subscribe(func(counter) { order = append(order, "second") })
	order = nil

	s.Set(counter{N: 1})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := New(counter{})
	var got int
	s.Subscribe(func(counter) { got = s.Get().N })

	s.Set(counter{N: 7})
	assert.Equal(t, 7, got)
}

func TestStore_Close(t *testing.T) {
	s := New(counter{})
	calls := 0
	s.Subscribe(func(counter) { calls++ })
	s.Close()

	s.Set(counter{N: 3})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, s.Get().N)
	assert.Equal(t, 0, s.Subscribers())

	late := 0
	s.Subscribe(func(c counter) { late = c.N })
	assert.Equal(t, 3, late)
	assert.Equal(t, 0, s.Subscribers())
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New(counter{})
	const goroutines = 50
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				s.Update(func(c counter) counter { c.N++; return c })
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, s.Get().N)
}

func TestStore_SubscriberMayMutateStore(t *testing.T) {
	s := New(counter{})
	var seen []int
	s.Subscribe(func(c counter) {
		if c.N == 1 {
			s.Set(counter{N: 2})
		}
	})
	s.Subscribe(func(c counter) { seen = append(seen, c.N) })

	s.Set(counter{N: 1})

	assert.Equal(t, 2, s.Get().N)
	// The nested publication reached the second subscriber first, so the
	// outer one is dropped for it.
	assert.Equal(t, []int{0, 2}, seen)
}

func TestStore_OlderSnapshotNeverFollowsNewer(t *testing.T) {
	s := New(counter{})
	release := make(chan struct{})
	holding := make(chan struct{})

	s.Subscribe(func(c counter) {
		if c.N == 1 {
			close(holding)
			<-release
		}
	})
	var mu sync.Mutex
	var seen []int
	s.Subscribe(func(c counter) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, c.N)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Set(counter{N: 1})
	}()
	<-holding

	// Published while version 1 is still being delivered.
	s.Set(counter{N: 2})
	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 2}, seen)
}

func TestSubscriber_DropsStaleVersions(t *testing.T) {
	var seen []int
	sub := &subscriber[counter]{fn: func(c counter) { seen = append(seen, c.N) }}

	sub.deliver(counter{N: 5}, 5)
	sub.deliver(counter{N: 4}, 4)
	sub.deliver(counter{N: 5}, 5)
	sub.deliver(counter{N: 6}, 6)

	assert.Equal(t, []int{5, 6}, seen)
}
