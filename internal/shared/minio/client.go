// Package objstore 封装 MinIO 对象存储客户端（药品照片）
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"medshare/internal/config"
	"medshare/internal/shared/storage"
)

// PhotoPrefix 照片对象键前缀
const PhotoPrefix = "photos/"

// Client MinIO 客户端封装
type Client struct {
	mc     *minio.Client
	bucket string
}

// ObjectInfo 下载时返回的对象元信息
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// NewClient 创建 MinIO 客户端（不发起网络请求）
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio access_key and secret_key are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "medshare-photos"
	}

	return &Client{mc: mc, bucket: bucket}, nil
}

// Bucket 返回 bucket 名称
func (c *Client) Bucket() string {
	return c.bucket
}

// EnsureBucket 确保 bucket 存在
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		log.Printf("[minio] Created bucket: %s", c.bucket)
	}
	return nil
}

// Upload 上传对象
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := c.mc.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// Download 下载对象，调用方负责关闭返回的 ReadCloser
// 对象不存在时返回 storage.ErrNotFound
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("download %s: %w", key, wrapError(err))
	}
	// GetObject 不会立即返回错误，需 Stat 验证对象存在
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", key, wrapError(err))
	}
	return obj, &ObjectInfo{Size: st.Size, ContentType: st.ContentType}, nil
}

// wrapError 将 MinIO 错误转换为领域错误
func wrapError(err error) error {
	if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return errors.Join(storage.ErrNotFound, err)
	}
	return err
}

// NewPhotoKey 生成照片对象键：photos/{uuid}{ext}
// 扩展名取自上传文件名，统一小写
func NewPhotoKey(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 8 {
		ext = ""
	}
	return PhotoPrefix + uuid.NewString() + ext
}

// ValidPhotoKey 判断对象键是否为本服务生成的照片键
func ValidPhotoKey(key string) bool {
	if !strings.HasPrefix(key, PhotoPrefix) || strings.Contains(key, "..") {
		return false
	}
	name := strings.TrimPrefix(key, PhotoPrefix)
	return name != "" && !strings.Contains(name, "/")
}
