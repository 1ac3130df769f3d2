package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, no-op)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// Version trả về version hiện tại của key, 0 khi key chưa từng bị Invalidate.
	// Đọc version TRƯỚC khi đọc store rồi truyền cho SetIfVersion.
	Version(ctx context.Context, key string) (int64, error)

	// SetIfVersion chỉ ghi khi version của key vẫn bằng version đã đọc.
	// Returns stored = false khi có Invalidate xen giữa.
	SetIfVersion(ctx context.Context, key string, value interface{}, ttl time.Duration, version int64) (bool, error)

	// Invalidate xóa key và tăng version trong cùng một bước
	Invalidate(ctx context.Context, key string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error

	Close() error
}
