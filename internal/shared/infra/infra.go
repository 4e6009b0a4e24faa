// Package infra 基础设施聚合层
//
// 提供统一的基础设施初始化和依赖注入，包括：
//   - Storage：持久化存储（MongoDB / PostgreSQL / SQLite）
//   - Cache：自动补全建议缓存（Redis，可选）
//   - Photos：照片对象存储（MinIO，可选）
package infra

import (
	"context"
	"fmt"
	"log"
	"time"

	"medshare/internal/config"
	"medshare/internal/shared/cache"
	objstore "medshare/internal/shared/minio"
	"medshare/internal/shared/storage"
)

// Infrastructure 基础设施聚合结构
type Infrastructure struct {
	// Storage 持久化存储
	Storage storage.PersistentStore

	// Cache 建议缓存，未配置 Redis 时为 NoOpCache
	Cache cache.SuggestionCache

	// Photos 照片对象存储，未配置 MinIO 时为 nil
	Photos *objstore.Client
}

// New 按配置初始化全部基础设施
//
// 存储初始化失败直接返回错误；Redis 不可用时降级为 NoOpCache；
// MinIO bucket 检查失败只记录日志，照片路由仍然注册。
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	store, err := NewPersistentStore(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DatabaseDBName)
	if err != nil {
		return nil, err
	}
	infra := &Infrastructure{Storage: store}

	infra.Cache, err = NewSuggestionCache(cfg.RedisURL, cache.DefaultSuggestionTTL)
	if err != nil {
		log.Printf("[infra] Redis unavailable, suggestion cache disabled: %v", err)
		infra.Cache = cache.NewNoOpCache()
	}

	if cfg.PhotosEnabled() {
		client, err := objstore.NewClient(cfg.MinIO)
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("init photo storage: %w", err)
		}
		bctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := client.EnsureBucket(bctx); err != nil {
			log.Printf("[infra] MinIO bucket %s not ready: %v", client.Bucket(), err)
		}
		cancel()
		infra.Photos = client
	}

	return infra, nil
}

// Close 关闭所有基础设施连接
func (i *Infrastructure) Close() error {
	var lastErr error

	if i.Storage != nil {
		if err := i.Storage.Close(); err != nil {
			lastErr = err
		}
	}

	if i.Cache != nil {
		if err := i.Cache.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// NewNoOpInfrastructure 创建只包含存储的基础设施（用于测试）
func NewNoOpInfrastructure(store storage.PersistentStore) *Infrastructure {
	return &Infrastructure{
		Storage: store,
		Cache:   cache.NewNoOpCache(),
	}
}
