package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// Denylist records logged-out tokens in Redis until their natural expiry.
// A nil client degrades to a no-op list: logout stops revoking but requests
// keep flowing.
type Denylist struct {
	rdb *redis.Client
}

// NewDenylist wraps a redis client, which may be nil.
func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

// Add marks a token revoked until the given expiry.
func (d *Denylist) Add(ctx context.Context, token string, until time.Time) error {
	if d == nil || d.rdb == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+fingerprint(token), "1", ttl).Err()
}

// Contains reports whether a token has been revoked.
func (d *Denylist) Contains(ctx context.Context, token string) bool {
	if d == nil || d.rdb == nil {
		return false
	}
	n, err := d.rdb.Exists(ctx, denylistPrefix+fingerprint(token)).Result()
	return err == nil && n > 0
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
