package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medshare/internal/shared/cache"

	"github.com/redis/go-redis/v9"
)

var _ cache.SuggestionCache = (*Store)(nil)

// generation 读取当前代号，键不存在时为 0
func (s *Store) generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, cache.KeySuggestionGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func suggestionKey(gen int64, query string) string {
	return fmt.Sprintf("%s%d:%s", cache.KeySuggestionPrefix, gen, strings.ToLower(query))
}

// GetSuggestions 读取当前代的缓存结果，同时返回读到的代号
func (s *Store) GetSuggestions(ctx context.Context, query string) ([]string, int64, bool, error) {
	gen, err := s.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	data, err := s.client.Get(ctx, suggestionKey(gen, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, gen, false, err
	}
	return names, gen, true, nil
}

// SetSuggestions 写入 gen 代的缓存结果
// gen 取自 GetSuggestions，期间发生的增删已递增代号，旧代的键不会再被读到
func (s *Store) SetSuggestions(ctx context.Context, gen int64, query string, names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, suggestionKey(gen, query), data, s.ttl).Err()
}

// InvalidateSuggestions 递增代号，旧代的键由 TTL 自然过期
func (s *Store) InvalidateSuggestions(ctx context.Context) error {
	return s.client.Incr(ctx, cache.KeySuggestionGeneration).Err()
}
