package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 10 * time.Minute

// ApprovalDedup remembers which visitors already had an approval request
// sent to their residents.
type ApprovalDedup struct {
	client *redis.Client
	keys   keyspace
	ttl    time.Duration
}

// NewApprovalDedup creates an ApprovalDedup; ttl <= 0 selects the default window.
func NewApprovalDedup(client *redis.Client, keys keyspace, ttl time.Duration) *ApprovalDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &ApprovalDedup{client: client, keys: keys, ttl: ttl}
}

// IsDuplicate reports whether an approval request for visitorID is still remembered.
func (d *ApprovalDedup) IsDuplicate(ctx context.Context, visitorID int64) (bool, error) {
	n, err := d.client.Exists(ctx, d.keys.approval(visitorID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the request; it expires after the dedup window.
func (d *ApprovalDedup) Mark(ctx context.Context, visitorID int64) error {
	return d.client.Set(ctx, d.keys.approval(visitorID), "1", d.ttl).Err()
}
