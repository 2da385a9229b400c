// Package redisstore adapts Redis into the ephemeral key-value capability the
// credential flows run on: expiring keys plus atomic take semantics.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skyfuel/auth-api/internal/config"
	"github.com/skyfuel/auth-api/internal/domain"
)

// opTimeout bounds every store call. Redis is treated as a remote,
// possibly-slow collaborator; a slow call fails the request instead of
// hanging it, and TTL expiry cleans up whatever state was left behind.
const opTimeout = 3 * time.Second

// CompareResult is the outcome of a CompareDelete call.
type CompareResult int

const (
	CompareMissing  CompareResult = iota // key absent or expired
	CompareMismatch                      // present, value differed, left intact
	CompareDeleted                       // present, value matched, deleted
)

// compareDelete deletes the key only when its value equals ARGV[1].
// Running the check inside Redis makes verify-then-delete a single
// indivisible operation: two concurrent verifiers cannot both see the old
// value and both proceed.
var compareDelete = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v == false then
  return -1
end
if v == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`)

// Store is the Redis-backed ephemeral store.
type Store struct {
	client *redis.Client
}

// NewClient creates a Redis client from the configured URL.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Set stores value under key with the given TTL, overwriting any previous value.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// Get returns the value under key, or domain.ErrNotFound when the key is
// absent or has expired.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: redis get: %v", domain.ErrUnavailable, err)
	}
	return v, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", domain.ErrUnavailable, err)
	}
	return nil
}

// TakeDelete atomically reads and removes key (GETDEL). Of N concurrent
// callers exactly one receives the value; the rest get domain.ErrNotFound.
func (s *Store) TakeDelete(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	v, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: redis getdel: %v", domain.ErrUnavailable, err)
	}
	return v, nil
}

// CompareDelete atomically deletes key if its value equals expected.
// A mismatch leaves the stored value intact so the caller may retry until
// the TTL runs out.
func (s *Store) CompareDelete(ctx context.Context, key, expected string) (CompareResult, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	n, err := compareDelete.Run(ctx, s.client, []string{key}, expected).Int()
	if err != nil {
		return CompareMissing, fmt.Errorf("%w: redis compare-delete: %v", domain.ErrUnavailable, err)
	}
	switch n {
	case 1:
		return CompareDeleted, nil
	case 0:
		return CompareMismatch, nil
	default:
		return CompareMissing, nil
	}
}
