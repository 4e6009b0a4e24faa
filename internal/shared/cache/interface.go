// Package cache 缓存层抽象接口
//
// 缓存自动补全结果，当前由 Redis 实现；未配置 Redis 时使用 NoOpCache。
// 缓存错误不影响请求结果，调用方只记录日志并回落到存储层。
package cache

import (
	"context"
	"time"
)

// 自动补全缓存键
const (
	KeySuggestionGeneration = "medshare:suggest:gen"   // 代计数器，药品增删时 INCR
	KeySuggestionPrefix     = "medshare:suggest:"      // medshare:suggest:{gen}:{query}
	DefaultSuggestionTTL    = 5 * time.Minute
)

// SuggestionCache 自动补全结果缓存
type SuggestionCache interface {
	// GetSuggestions 返回读取时的代号 gen；未命中时 names 为 nil、hit 为 false
	GetSuggestions(ctx context.Context, query string) (names []string, gen int64, hit bool, err error)
	// SetSuggestions 只写入 gen 代；gen 已被 InvalidateSuggestions 淘汰时写入的结果不会再被读到
	SetSuggestions(ctx context.Context, gen int64, query string, names []string) error
	// InvalidateSuggestions 使所有已缓存结果失效
	InvalidateSuggestions(ctx context.Context) error
	Close() error
}
