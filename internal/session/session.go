// Package session is the single source of truth for who is logged in.
// The in-memory state is mirrored into a persistent Store and mutated
// only through Login, SetUser, Logout and CheckAuth.
package session

import (
	"context"
	"sync"

	"github.com/zerodha/logf"

	"github.com/dacsanviet/storefront/pkg/models"
)

// Manager holds the authenticated identity. The zero state is
// unauthenticated with loading=true until CheckAuth has run once.
type Manager struct {
	store Store
	lo    logf.Logger

	mu        sync.RWMutex
	user      *models.User
	tokens    models.Tokens
	sessionID string
	authed    bool
	loading   bool
}

// New returns a Manager backed by the given persistent store.
func New(store Store, lo logf.Logger) *Manager {
	return &Manager{
		store:   store,
		lo:      lo,
		loading: true,
	}
}

// Login persists the token material and user and marks the session
// authenticated. A persistence failure is returned but the in-memory
// state is updated regardless, so the running app stays usable.
func (m *Manager) Login(ctx context.Context, tokens models.Tokens, sessionID string, user models.User) error {
	err := m.store.Save(ctx, Snapshot{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SessionID:    sessionID,
		User:         user,
	})
	if err != nil {
		m.lo.Error("error persisting session", "error", err)
	}

	m.mu.Lock()
	m.tokens = tokens
	m.sessionID = sessionID
	u := user
	m.user = &u
	m.authed = true
	m.loading = false
	m.mu.Unlock()

	return err
}

// SetUser overwrites the user snapshot in place after a profile-mutating
// call returned an updated profile.
func (m *Manager) SetUser(ctx context.Context, user models.User) error {
	err := m.store.SaveUser(ctx, user)
	if err != nil {
		m.lo.Error("error persisting user", "error", err)
	}

	m.mu.Lock()
	u := user
	m.user = &u
	m.mu.Unlock()

	return err
}

// Logout clears the persisted and in-memory session. Idempotent; calling
// it while logged out is harmless.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	if err != nil {
		m.lo.Error("error clearing session", "error", err)
	}

	m.mu.Lock()
	m.tokens = models.Tokens{}
	m.sessionID = ""
	m.user = nil
	m.authed = false
	m.loading = false
	m.mu.Unlock()

	return err
}

// CheckAuth rehydrates the session from persistent storage on process
// start. IsLoading reports true until this completes, false after,
// regardless of the outcome.
func (m *Manager) CheckAuth(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	snap, err := m.store.Load(ctx)
	if err != nil {
		m.mu.Lock()
		m.tokens = models.Tokens{}
		m.sessionID = ""
		m.user = nil
		m.authed = false
		m.mu.Unlock()

		if err == ErrNotExist {
			return nil
		}
		m.lo.Error("error rehydrating session", "error", err)
		return err
	}

	m.mu.Lock()
	m.tokens = models.Tokens{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
	}
	m.sessionID = snap.SessionID
	u := snap.User
	m.user = &u
	m.authed = true
	m.mu.Unlock()

	return nil
}

// User returns a copy of the current user, or nil when logged out.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// AccessToken returns the current bearer token, or "" when logged out.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.AccessToken
}

// SessionID returns the current server session ID, or "".
func (m *Manager) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authed
}

// IsLoading reports whether the initial CheckAuth is still pending. This
// is the "is the app ready to route" signal.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}
