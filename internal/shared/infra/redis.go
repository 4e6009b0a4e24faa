package infra

import (
	"time"

	"medshare/internal/shared/cache"
	cacheredis "medshare/internal/shared/cache/redis"
)

// NewSuggestionCache 创建自动补全缓存，redisURL 为空时返回 NoOpCache
func NewSuggestionCache(redisURL string, ttl time.Duration) (cache.SuggestionCache, error) {
	if redisURL == "" {
		return cache.NewNoOpCache(), nil
	}
	store, err := cacheredis.NewStoreFromURL(redisURL, ttl)
	if err != nil {
		return nil, err
	}
	return store, nil
}
