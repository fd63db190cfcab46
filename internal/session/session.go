// Package session implements the expiring token -> user id mapping
// backing authentication. The store is the sole source of truth for
// session liveness: a token is valid exactly while its key exists.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jjiisub/bboard/internal/config"
	"github.com/jjiisub/bboard/internal/domain"
)

// Store maps opaque tokens to user ids with per-key expiry.
type Store interface {
	// Put stores the mapping, overwriting any existing entry, and
	// schedules expiry after ttl with no renewal.
	Put(ctx context.Context, token string, uid domain.UserId, ttl time.Duration) error
	// Get looks up a token. Absence is not an error: ok is false when
	// there is no active session for the token.
	Get(ctx context.Context, token string) (uid domain.UserId, ok bool, err error)
	// Delete removes the mapping. Deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}

// Redis is the production Store, backed by an external Redis instance.
type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

func NewRedis(ctx context.Context, cfg *config.Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Public.Redis.Host, cfg.Public.Redis.Port),
		Password: cfg.Private.RedisPassword,
		DB:       cfg.Public.Redis.Db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Put(ctx context.Context, token string, uid domain.UserId, ttl time.Duration) error {
	if err := r.client.Set(ctx, token, uid, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, token string) (domain.UserId, bool, error) {
	val, err := r.client.Get(ctx, token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up session: %w", err)
	}
	uid, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed session value %q: %w", val, err)
	}
	return uid, true, nil
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *Redis) Cleanup() error {
	return r.client.Close()
}
