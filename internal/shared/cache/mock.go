// Package cache 缓存层 mock 实现
package cache

import (
	"context"
)

// ============================================================================
// NoOpCache - 空操作的 SuggestionCache 实现（未配置 Redis 或测试时使用）
// ============================================================================

// NoOpCache 是一个不做任何操作的缓存实现，始终未命中
type NoOpCache struct{}

var _ SuggestionCache = (*NoOpCache)(nil)

// NewNoOpCache 创建 NoOpCache 实例
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Close 关闭缓存
func (c *NoOpCache) Close() error {
	return nil
}

func (c *NoOpCache) GetSuggestions(ctx context.Context, query string) ([]string, int64, bool, error) {
	return nil, 0, false, nil
}

func (c *NoOpCache) SetSuggestions(ctx context.Context, gen int64, query string, names []string) error {
	return nil
}

func (c *NoOpCache) InvalidateSuggestions(ctx context.Context) error {
	return nil
}
