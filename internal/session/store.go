package session

import (
	"context"
	"errors"

	"github.com/dacsanviet/storefront/pkg/models"
)

// ErrNotExist is returned when no session material is persisted.
var ErrNotExist = errors.New("no saved session")

// Snapshot is the session material mirrored into persistent storage:
// the token pair, the server session ID and the user profile.
type Snapshot struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	User         models.User
}

// Store represents a persistent key-value backend where the session is
// mirrored for restart durability.
type Store interface {
	// Save persists the full session snapshot, replacing any previous one.
	Save(ctx context.Context, s Snapshot) error

	// SaveUser updates only the persisted user profile, leaving the
	// tokens untouched. Used after profile-mutating calls.
	SaveUser(ctx context.Context, u models.User) error

	// Load reads the persisted snapshot. Returns ErrNotExist when no
	// access token is saved.
	Load(ctx context.Context) (Snapshot, error)

	// Clear deletes all persisted session material.
	Clear(ctx context.Context) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error
}
