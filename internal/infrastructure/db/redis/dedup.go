package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultDedupTTL is how long a submission's idempotency key is remembered.
const DefaultDedupTTL = 10 * time.Minute

// DedupChecker detects retried question submissions backed by Redis.
// Only a repeated idempotency key counts as a retry; asking the same
// question again under a new key is a new submission.
// Key format: dedup:query:<user_id>:<sha256(idempotency_key)[:8] hex>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// ttl <= 0 uses DefaultDedupTTL.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// IsDuplicate reports whether idempotencyKey was already used by userID
// within the TTL.
func (d *DedupChecker) IsDuplicate(ctx context.Context, userID, idempotencyKey string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID, idempotencyKey)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission as processed (expires after the TTL).
func (d *DedupChecker) Mark(ctx context.Context, userID, idempotencyKey string) error {
	if err := d.client.Set(ctx, d.key(userID, idempotencyKey), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}

func (d *DedupChecker) key(userID, idempotencyKey string) string {
	sum := sha256.Sum256([]byte(idempotencyKey))
	return fmt.Sprintf("dedup:query:%s:%s", userID, hex.EncodeToString(sum[:8]))
}
