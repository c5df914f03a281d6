// Package cache provides the page cache used by the HTTP client.
//
// Only pages that change rarely are cached: the concept art catalog and its
// category listings. Forecasts, jokes and image bytes are always fetched
// fresh. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under ~/.cache/dailywall/ (CLI default)
//   - [RedisCache]: a shared Redis instance, for machines that run dailywall
//     from several accounts
//   - [NullCache]: caching disabled (--no-cache)
package cache

import (
	"context"
	"time"
)

// TTLPage is the default lifetime of a cached catalog or category page.
const TTLPage = 24 * time.Hour

// Cache stores opaque byte payloads under string keys with an expiry.
type Cache interface {
	// Get returns the cached data and true on a hit. A miss or an expired
	// entry returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PageKey returns the cache key for the body of the page at url.
func PageKey(url string) string {
	return hashKey("page", url)
}
