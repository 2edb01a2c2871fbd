package repository

import "context"

// CacheRepository stores serialized loan summaries by key. A lookup
// failure of any kind is reported as a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
