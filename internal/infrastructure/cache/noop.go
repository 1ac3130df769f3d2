package cache

import (
	"context"
	"time"

	"bookcatalog-backend/pkg/cache"
)

// NoopCache dùng khi REDIS_ENABLED=false hoặc Redis không kết nối được: mọi Get đều miss
type NoopCache struct{}

var _ cache.Cache = NoopCache{}

func NewNoopCache() NoopCache { return NoopCache{} }

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func (NoopCache) Version(context.Context, string) (int64, error) { return 0, nil }

func (NoopCache) SetIfVersion(context.Context, string, interface{}, time.Duration, int64) (bool, error) {
	return false, nil
}

func (NoopCache) Invalidate(context.Context, string) error { return nil }

func (NoopCache) Ping(context.Context) error { return nil }

func (NoopCache) Close() error { return nil }
