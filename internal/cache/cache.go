package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for derived data that is expensive to
// recompute. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
