package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"medshare/internal/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore 优先使用 REDIS_TEST_URL，未设置时启动内嵌 miniredis
func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		mr := miniredis.RunT(t)
		url = "redis://" + mr.Addr() + "/0"
	}
	s, err := NewStoreFromURL(url, time.Minute)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	ctx := context.Background()
	require.NoError(t, s.client.FlushDB(ctx).Err())
	t.Cleanup(func() {
		s.client.FlushDB(context.Background())
		s.Close()
	})
	return s
}

func TestSuggestionCache(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	names, gen, hit, err := s.GetSuggestions(ctx, "par")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, names)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, s.SetSuggestions(ctx, gen, "par", []string{"Paracetamol"}))

	names, _, hit, err = s.GetSuggestions(ctx, "PAR")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Paracetamol"}, names)

	require.NoError(t, s.InvalidateSuggestions(ctx))
	_, gen, hit, err = s.GetSuggestions(ctx, "par")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), gen)

	stored, err := s.client.Get(ctx, cache.KeySuggestionGeneration).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored)
}

// 查询与写缓存之间发生捐赠：旧结果只能落在旧代，之后的查询不能命中
func TestSuggestionCache_InvalidateBetweenGetAndSet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, gen, hit, err := s.GetSuggestions(ctx, "par")
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, s.InvalidateSuggestions(ctx))
	require.NoError(t, s.SetSuggestions(ctx, gen, "par", []string{}))

	names, newGen, hit, err := s.GetSuggestions(ctx, "par")
	require.NoError(t, err)
	assert.False(t, hit, "stale result served after invalidation: %v", names)
	assert.Equal(t, gen+1, newGen)
}

func TestSuggestionCache_EmptyResult(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSuggestions(ctx, 0, "zzz", nil))
	names, _, hit, err := s.GetSuggestions(ctx, "zzz")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{}, names)
}

func TestSuggestionKey(t *testing.T) {
	assert.Equal(t, "medshare:suggest:3:para", suggestionKey(3, "PARA"))
}
