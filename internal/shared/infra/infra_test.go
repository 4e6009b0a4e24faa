package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medshare/internal/config"
	"medshare/internal/shared/cache"
	"medshare/internal/shared/model"
	"medshare/internal/shared/storage/repository"
)

func TestNewPersistentStore_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "medshare.db")
	store, err := NewPersistentStore("sqlite", dsn, "")
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*repository.Store)
	assert.True(t, ok)

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))
	u := model.NewUser(&model.SignupRequest{Name: "A", Email: "a@x.com"}, "hash")
	require.NoError(t, store.CreateUser(ctx, u))
	got, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}

func TestNewPersistentStore_UnknownDriver(t *testing.T) {
	_, err := NewPersistentStore("cassandra", "", "")
	assert.Error(t, err)
}

func TestNewSuggestionCache_Disabled(t *testing.T) {
	c, err := NewSuggestionCache("", cache.DefaultSuggestionTTL)
	require.NoError(t, err)
	_, ok := c.(*cache.NoOpCache)
	assert.True(t, ok)
}

func TestNewSuggestionCache_BadURL(t *testing.T) {
	_, err := NewSuggestionCache("not-a-redis-url", cache.DefaultSuggestionTTL)
	assert.Error(t, err)
}

func TestNew_SQLiteWithoutOptionalServices(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		DatabaseURL:    ":memory:",
	}
	inf, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer inf.Close()

	assert.NotNil(t, inf.Storage)
	assert.Nil(t, inf.Photos)
	_, ok := inf.Cache.(*cache.NoOpCache)
	assert.True(t, ok)
}

func TestNew_UnreachableRedisDegrades(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		DatabaseURL:    ":memory:",
		RedisURL:       "redis://127.0.0.1:1/0",
	}
	inf, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer inf.Close()

	_, ok := inf.Cache.(*cache.NoOpCache)
	assert.True(t, ok)
}
