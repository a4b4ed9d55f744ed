// Package redis implements the session store backend on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dacsanviet/storefront/internal/session"
	"github.com/dacsanviet/storefront/pkg/models"
)

// Persisted entries, one key each.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keySessionID    = "sessionId"
	keyUserData     = "userData"
)

// Redis implements a Redis session Store.
type Redis struct {
	client *redis.Client
	conf   Conf
}

// Conf contains Redis configuration fields.
type Conf struct {
	Host      string        `json:"host"`
	Port      int           `json:"port"`
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	DB        int           `json:"db"`
	Timeout   time.Duration `json:"timeout"`
	KeyPrefix string        `json:"key_prefix"`
}

// New returns a Redis implementation of the session store.
func New(c Conf) *Redis {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "SESSION"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", c.Host, c.Port),
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
		ReadTimeout:  c.Timeout,
	})

	return &Redis{
		conf:   c,
		client: client,
	}
}

// Ping checks if the Redis server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Save persists the full session snapshot, replacing any previous one.
func (r *Redis) Save(ctx context.Context, s session.Snapshot) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.makeKey(keyAccessToken), s.AccessToken, 0)
	pipe.Set(ctx, r.makeKey(keyRefreshToken), s.RefreshToken, 0)
	pipe.Set(ctx, r.makeKey(keySessionID), s.SessionID, 0)
	pipe.Set(ctx, r.makeKey(keyUserData), string(user), 0)
	_, err = pipe.Exec(ctx)
	return err
}

// SaveUser updates only the persisted user profile.
func (r *Redis) SaveUser(ctx context.Context, u models.User) error {
	user, err := json.Marshal(u)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.makeKey(keyUserData), string(user), 0).Err()
}

// Load reads the persisted snapshot.
func (r *Redis) Load(ctx context.Context) (session.Snapshot, error) {
	var out session.Snapshot

	vals, err := r.client.MGet(ctx,
		r.makeKey(keyAccessToken),
		r.makeKey(keyRefreshToken),
		r.makeKey(keySessionID),
		r.makeKey(keyUserData),
	).Result()
	if err != nil {
		return out, err
	}

	// No access token means no session.
	tok, ok := vals[0].(string)
	if !ok || tok == "" {
		return out, session.ErrNotExist
	}
	out.AccessToken = tok

	if v, ok := vals[1].(string); ok {
		out.RefreshToken = v
	}
	if v, ok := vals[2].(string); ok {
		out.SessionID = v
	}
	if v, ok := vals[3].(string); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &out.User); err != nil {
			return out, fmt.Errorf("error parsing saved user: %w", err)
		}
	}

	return out, nil
}

// Clear deletes all persisted session material.
func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx,
		r.makeKey(keyAccessToken),
		r.makeKey(keyRefreshToken),
		r.makeKey(keySessionID),
		r.makeKey(keyUserData),
	).Err()
}

// makeKey makes the Redis key for a persisted entry.
func (r *Redis) makeKey(field string) string {
	return fmt.Sprintf("%s:%s", r.conf.KeyPrefix, field)
}
