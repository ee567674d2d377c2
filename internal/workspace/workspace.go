package workspace

import (
	"time"

	"github.com/roach88/volt/internal/clock"
	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/reactive"
)

// CacheDuration is how long a cache entry stays fresh.
const CacheDuration = 300000 * time.Millisecond

// CacheEntry is one workspace's cached collections.
type CacheEntry struct {
	Data       []model.Collection `json:"data"`
	Timestamp  time.Time          `json:"timestamp"`
	Refreshing bool               `json:"is_refreshing"`
}

// Fresh reports whether the entry is still within CacheDuration at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return now.Sub(e.Timestamp) < CacheDuration
}

// State is the workspace snapshot.
type State struct {
	Workspaces       []model.Workspace  `json:"workspaces"`
	CurrentWorkspace *model.Workspace   `json:"current_workspace"`
	Collections      []model.Collection `json:"collections"`
	// CollectionsOf is the workspace the Collections view was loaded for,
	// or "" when the view was set without one.
	CollectionsOf string                `json:"collections_workspace_id,omitempty"`
	Loading       bool                  `json:"is_loading"`
	Error         string                `json:"error,omitempty"`
	Cache         map[string]CacheEntry `json:"collections_cache"`
}

// Store is the workspace container.
type Store struct {
	store *reactive.Store[State]
	clock clock.Clock
}

// New creates an empty store. A nil clock means the system clock.
func New(c clock.Clock) *Store {
	return &Store{
		store: reactive.New(initialState()),
		clock: clock.OrSystem(c),
	}
}

func initialState() State {
	return State{Cache: map[string]CacheEntry{}}
}

// SetWorkspaces replaces the workspace list.
func (s *Store) SetWorkspaces(workspaces []model.Workspace) {
	s.store.Update(func(cur State) State {
		cur.Workspaces = workspaces
		return cur
	})
}

// SetCurrentWorkspace selects ws as the active workspace; nil clears it.
func (s *Store) SetCurrentWorkspace(ws *model.Workspace) {
	var sel *model.Workspace
	if ws != nil {
		w := *ws
		sel = &w
	}
	s.store.Update(func(cur State) State {
		cur.CurrentWorkspace = sel
		return cur
	})
}

// AddWorkspace appends ws to the list.
func (s *Store) AddWorkspace(ws model.Workspace) {
	s.store.Update(func(cur State) State {
		cur.Workspaces = appendCopy(cur.Workspaces, ws)
		return cur
	})
}

// SetCollections replaces the current collection view. The cache is not
// touched and the view is no longer tied to a workspace.
func (s *Store) SetCollections(collections []model.Collection) {
	s.store.Update(func(cur State) State {
		cur.Collections = collections
		cur.CollectionsOf = ""
		return cur
	})
}

// ShowCollections replaces the current collection view with the collections
// of workspaceID. The cache is not touched.
func (s *Store) ShowCollections(workspaceID string, collections []model.Collection) {
	s.store.Update(func(cur State) State {
		cur.Collections = collections
		cur.CollectionsOf = workspaceID
		return cur
	})
}

// AddCollection appends c to the current collection view.
func (s *Store) AddCollection(c model.Collection) {
	s.store.Update(func(cur State) State {
		cur.Collections = appendCopy(cur.Collections, c)
		return cur
	})
}

// AddCachedCollection records a collection created in workspaceID. It is
// appended to the view only when the view holds workspaceID's collections,
// and to workspaceID's cache entry only when one exists. The entry keeps its
// timestamp, so a stale entry stays stale.
func (s *Store) AddCachedCollection(workspaceID string, c model.Collection) {
	s.store.Mutate(func(cur State) (State, bool) {
		changed := false
		if workspaceID != "" && cur.CollectionsOf == workspaceID {
			cur.Collections = appendCopy(cur.Collections, c)
			changed = true
		}
		if entry, ok := cur.Cache[workspaceID]; ok {
			entry.Data = appendCopy(entry.Data, c)
			cur.Cache = cloneCache(cur.Cache)
			cur.Cache[workspaceID] = entry
			changed = true
		}
		return cur, changed
	})
}

// RemoveCollection drops the collection from the current view and from every
// cache entry holding it.
func (s *Store) RemoveCollection(id string) {
	s.store.Mutate(func(cur State) (State, bool) {
		changed := false
		if next, ok := withoutCollection(cur.Collections, id); ok {
			cur.Collections = next
			changed = true
		}
		var cache map[string]CacheEntry
		for wsID, entry := range cur.Cache {
			next, ok := withoutCollection(entry.Data, id)
			if !ok {
				continue
			}
			if cache == nil {
				cache = cloneCache(cur.Cache)
			}
			entry.Data = next
			cache[wsID] = entry
			changed = true
		}
		if cache != nil {
			cur.Cache = cache
		}
		return cur, changed
	})
}

// SetLoading toggles the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.store.Update(func(cur State) State {
		cur.Loading = loading
		return cur
	})
}

// SetError records a user-facing error; "" clears it.
func (s *Store) SetError(msg string) {
	s.store.Update(func(cur State) State {
		cur.Error = msg
		return cur
	})
}

// Reset discards everything, including every cache entry.
func (s *Store) Reset() {
	s.store.Set(initialState())
}

// GetCachedCollections returns the cached collections for workspaceID when a
// fresh entry exists. ok is false on a miss or a stale entry; the caller must
// then fetch from the network.
func (s *Store) GetCachedCollections(workspaceID string) (collections []model.Collection, ok bool) {
	entry, exists := s.store.Get().Cache[workspaceID]
	if !exists || !entry.Fresh(s.clock.Now()) {
		return nil, false
	}
	return entry.Data, true
}

// SetCachedCollections replaces both the current collection view and the
// cache entry for workspaceID, stamping it now with refreshing cleared.
func (s *Store) SetCachedCollections(workspaceID string, collections []model.Collection) {
	now := s.clock.Now()
	s.store.Update(func(cur State) State {
		cur.Collections = collections
		cur.CollectionsOf = workspaceID
		cur.Cache = cloneCache(cur.Cache)
		cur.Cache[workspaceID] = CacheEntry{
			Data:       collections,
			Timestamp:  now,
			Refreshing: false,
		}
		return cur
	})
}

// SetRefreshing sets the refreshing flag of an existing entry. Without an
// entry for workspaceID it does nothing; it never creates one.
func (s *Store) SetRefreshing(workspaceID string, refreshing bool) {
	s.store.Mutate(func(cur State) (State, bool) {
		entry, ok := cur.Cache[workspaceID]
		if !ok {
			return cur, false
		}
		entry.Refreshing = refreshing
		cur.Cache = cloneCache(cur.Cache)
		cur.Cache[workspaceID] = entry
		return cur, true
	})
}

// IsCacheValid reports whether a fresh entry exists for workspaceID.
func (s *Store) IsCacheValid(workspaceID string) bool {
	entry, ok := s.store.Get().Cache[workspaceID]
	return ok && entry.Fresh(s.clock.Now())
}

// InvalidateCache drops the entry for workspaceID.
func (s *Store) InvalidateCache(workspaceID string) {
	s.store.Mutate(func(cur State) (State, bool) {
		if _, ok := cur.Cache[workspaceID]; !ok {
			return cur, false
		}
		cur.Cache = cloneCache(cur.Cache)
		delete(cur.Cache, workspaceID)
		return cur, true
	})
}

// Entry returns the raw cache entry for workspaceID, fresh or not.
func (s *Store) Entry(workspaceID string) (CacheEntry, bool) {
	entry, ok := s.store.Get().Cache[workspaceID]
	return entry, ok
}

// State returns the current snapshot. Callers must not modify it.
func (s *Store) State() State {
	return s.store.Get()
}

// Subscribe registers fn for every published snapshot.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}

// Close drops all subscribers.
func (s *Store) Close() {
	s.store.Close()
}

func cloneCache(in map[string]CacheEntry) map[string]CacheEntry {
	out := make(map[string]CacheEntry, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func withoutCollection(in []model.Collection, id string) ([]model.Collection, bool) {
	idx := -1
	for i, c := range in {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return in, false
	}
	out := make([]model.Collection, 0, len(in)-1)
	out = append(out, in[:idx]...)
	return append(out, in[idx+1:]...), true
}
