// Package session holds the authenticated-user state.
//
// States:
//
//	unauthenticated --SetUser--> authenticated(user) --Logout--> unauthenticated
//
// Loading is orthogonal to both. The user record (never a credential) is
// persisted to durable storage under UserKey so a restart can rehydrate the
// session through InitFromStorage. The session credential itself travels as
// an HTTP-only cookie handled by the transport.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/reactive"
	"github.com/roach88/volt/internal/storage"
)

// UserKey is the durable storage key holding the serialized user.
const UserKey = "volt_user"

// State is the session snapshot.
type State struct {
	User          *model.User `json:"user"`
	Authenticated bool        `json:"is_authenticated"`
	Loading       bool        `json:"is_loading"`
}

// Store is the session container.
type Store struct {
	store  *reactive.Store[State]
	kv     storage.KV
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger overrides the logger (defaults to slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an unauthenticated session backed by kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		store: reactive.New(State{}),
		kv:    kv,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SetUser marks the session authenticated as user and persists the user.
// The in-memory transition happens even if persisting fails; the storage
// error is returned so the caller can surface it.
func (s *Store) SetUser(ctx context.Context, user model.User) error {
	u := user
	s.store.Update(func(State) State {
		return State{User: &u, Authenticated: true, Loading: false}
	})

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.logger.Debug("session user persisted", "user_id", user.ID)
	return nil
}

// Logout returns to the unauthenticated state and removes the persisted user.
func (s *Store) Logout(ctx context.Context) error {
	s.store.Set(State{})
	if err := s.kv.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("remove persisted user: %w", err)
	}
	s.logger.Debug("session cleared")
	return nil
}

// SetLoading toggles the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.store.Mutate(func(cur State) (State, bool) {
		if cur.Loading == loading {
			return cur, false
		}
		cur.Loading = loading
		return cur, true
	})
}

// InitFromStorage restores a previously persisted user.
//
// A missing entry leaves the state untouched. A corrupt entry (unparseable
// JSON or a record without an id) is deleted and the state stays
// unauthenticated; that case is logged, not returned. Only storage I/O
// failures are returned.
func (s *Store) InitFromStorage(ctx context.Context) error {
	data, err := s.kv.Get(ctx, UserKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load persisted user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		s.logger.Warn("discarding corrupt persisted user", "key", UserKey, "error", err)
		if delErr := s.kv.Delete(ctx, UserKey); delErr != nil {
			return fmt.Errorf("remove corrupt persisted user: %w", delErr)
		}
		return nil
	}

	s.store.Update(func(cur State) State {
		cur.User = &user
		cur.Authenticated = true
		return cur
	})
	s.logger.Debug("session restored", "user_id", user.ID)
	return nil
}

// State returns the current snapshot.
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
