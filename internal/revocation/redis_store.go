package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "jwt:revoked:"
	scanBatchSize    = 100
)

type redisStore struct {
	client    redis.UniversalClient
	prefix    string
	now       func() time.Time
	ownClient bool
}

// NewRedisStore stores revocations as Redis keys that expire together with
// the token. When ownClient is true, Close also closes client.
func NewRedisStore(client redis.UniversalClient, prefix string, now func() time.Time, ownClient bool) Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if now == nil {
		now = time.Now
	}

	return &redisStore{
		client:    client,
		prefix:    prefix,
		now:       now,
		ownClient: ownClient,
	}
}

func (r *redisStore) Add(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		// Already expired; the verifier rejects it on expiry alone.
		return nil
	}

	if err := r.client.Set(ctx, r.prefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *redisStore) Contains(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Cleanup is a no-op: Redis expires keys on its own.
func (r *redisStore) Cleanup(context.Context) (int, error) {
	return 0, nil
}

func (r *redisStore) Size(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)

	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan: %w", err)
		}

		total += len(keys)
		cursor = next

		if cursor == 0 {
			return total, nil
		}
	}
}

func (r *redisStore) Close() error {
	if !r.ownClient {
		return nil
	}
	return r.client.Close()
}
