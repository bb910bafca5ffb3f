// Package session holds the authenticated viewer for the lifetime of
// the client process. It is an explicitly constructed object passed to
// whoever needs it, rehydrated from durable storage on start and torn
// down as a unit on logout or session expiry.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"storefront/internal/localstore"
	"storefront/internal/model"
)

// Storage keys for persisted session state. Cleared together on
// teardown; the cart lives under its own per-user key and survives.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Session is the current authentication context: who is signed in and
// the bearer token proving it. Safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	user       *model.User
	token      string
	store      *localstore.Store
	logger     zerolog.Logger
	onTeardown func()
}

// New returns an empty session backed by store.
func New(store *localstore.Store, logger zerolog.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Load rehydrates the session from durable storage. A missing or
// partial snapshot leaves the session unauthenticated.
func (s *Session) Load() error {
	var (
		token string
		user  model.User
	)

	okToken, err := s.store.Get(keyToken, &token)
	if err != nil {
		return err
	}
	okUser, err := s.store.Get(keyUser, &user)
	if err != nil {
		return err
	}

	if !okToken || !okUser || token == "" {
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.logger.Debug().Int("user_id", user.ID).Str("role", user.Role.String()).Msg("session rehydrated")
	return nil
}

// SetUser installs the signed-in user and token and persists both.
func (s *Session) SetUser(user model.User, token string) error {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	if err := s.store.Put(keyToken, token); err != nil {
		return err
	}
	return s.store.Put(keyUser, user)
}

// User returns the current user, or nil when unauthenticated.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// OnTeardown registers a hook invoked after the session is cleared,
// used by the caller to redirect to authentication.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	s.onTeardown = fn
	s.mu.Unlock()
}

// Teardown clears the in-memory session and every persisted session
// key. Called on logout and on any 401 from the backend.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	fn := s.onTeardown
	s.mu.Unlock()

	if err := s.store.DeleteAll(keyToken, keyUser); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear persisted session state")
	}
	s.logger.Info().Msg("session torn down")

	if fn != nil {
		fn()
	}
}
