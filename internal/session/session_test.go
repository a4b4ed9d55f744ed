package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerodha/logf"

	"github.com/dacsanviet/storefront/pkg/models"
)

// memStore is an in-memory Store used to test the manager in isolation.
type memStore struct {
	snap    *Snapshot
	failAll bool
}

func (m *memStore) Save(_ context.Context, s Snapshot) error {
	if m.failAll {
		return errors.New("store down")
	}
	m.snap = &s
	return nil
}

func (m *memStore) SaveUser(_ context.Context, u models.User) error {
	if m.failAll || m.snap == nil {
		return errors.New("store down")
	}
	m.snap.User = u
	return nil
}

func (m *memStore) Load(_ context.Context) (Snapshot, error) {
	if m.failAll {
		return Snapshot{}, errors.New("store down")
	}
	if m.snap == nil {
		return Snapshot{}, ErrNotExist
	}
	return *m.snap, nil
}

func (m *memStore) Clear(_ context.Context) error {
	if m.failAll {
		return errors.New("store down")
	}
	m.snap = nil
	return nil
}

func (m *memStore) Ping(_ context.Context) error { return nil }

var (
	testTokens = models.Tokens{AccessToken: "at", RefreshToken: "rt"}
	testUser   = models.User{ID: 1, Username: "nguyenvana", Email: "a@dacsan.vn", Role: "USER", IsActive: true}
)

func newManager() (*Manager, *memStore) {
	st := &memStore{}
	return New(st, logf.New(logf.Opts{})), st
}

func TestLogin(t *testing.T) {
	m, st := newManager()

	require.NoError(t, m.Login(context.Background(), testTokens, "sess-1", testUser))

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "at", m.AccessToken())
	assert.Equal(t, "sess-1", m.SessionID())
	require.NotNil(t, m.User())
	assert.Equal(t, testUser, *m.User())
	require.NotNil(t, st.snap, "Session wasn't persisted")
	assert.Equal(t, "at", st.snap.AccessToken)
}

func TestLogoutIdempotent(t *testing.T) {
	m, _ := newManager()
	require.NoError(t, m.Login(context.Background(), testTokens, "sess-1", testUser))

	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.AccessToken())
	assert.Nil(t, m.User())

	// Logging out twice is harmless.
	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated())
}

func TestLogoutClearsMemoryOnStoreFailure(t *testing.T) {
	m, st := newManager()
	require.NoError(t, m.Login(context.Background(), testTokens, "sess-1", testUser))

	st.failAll = true
	assert.Error(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated(), "Memory state must clear even when the store fails")
	assert.Nil(t, m.User())
}

func TestCheckAuthEmpty(t *testing.T) {
	m, _ := newManager()
	assert.True(t, m.IsLoading(), "IsLoading should start true")

	require.NoError(t, m.CheckAuth(context.Background()))
	assert.False(t, m.IsLoading(), "IsLoading must be false after CheckAuth")
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
}

func TestCheckAuthRehydrates(t *testing.T) {
	st := &memStore{snap: &Snapshot{
		AccessToken:  "at",
		RefreshToken: "rt",
		SessionID:    "sess-1",
		User:         testUser,
	}}
	m := New(st, logf.New(logf.Opts{}))

	require.NoError(t, m.CheckAuth(context.Background()))
	assert.False(t, m.IsLoading())
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "at", m.AccessToken())
	assert.Equal(t, "sess-1", m.SessionID())
	require.NotNil(t, m.User())
	assert.Equal(t, testUser, *m.User())
}

func TestCheckAuthStoreFailure(t *testing.T) {
	m, st := newManager()
	st.failAll = true

	assert.Error(t, m.CheckAuth(context.Background()))
	assert.False(t, m.IsLoading(), "IsLoading must never stay true")
	assert.False(t, m.IsAuthenticated())
}

func TestSetUser(t *testing.T) {
	m, st := newManager()
	require.NoError(t, m.Login(context.Background(), testTokens, "sess-1", testUser))

	updated := testUser
	updated.PhoneNumber = "0909123456"
	require.NoError(t, m.SetUser(context.Background(), updated))

	require.NotNil(t, m.User())
	assert.Equal(t, "0909123456", m.User().PhoneNumber)
	assert.Equal(t, "0909123456", st.snap.User.PhoneNumber, "Updated user wasn't persisted")
	assert.Equal(t, "at", m.AccessToken(), "Tokens must be untouched")
}
