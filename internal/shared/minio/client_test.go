package objstore

import (
	"errors"
	"strings"
	"testing"

	"medshare/internal/config"
	"medshare/internal/shared/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.MinIOConfig{})
	assert.Error(t, err)

	_, err = NewClient(config.MinIOConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	c, err := NewClient(config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "medshare-photos", c.Bucket())

	c, err = NewClient(config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", c.Bucket())
}

func TestNewPhotoKey(t *testing.T) {
	tests := []struct {
		filename string
		suffix   string
	}{
		{"box.JPG", ".jpg"},
		{"scan.png", ".png"},
		{`C:\Users\me\pill.jpeg`, ".jpeg"},
		{"noext", ""},
		{"weird.extensionthatistoolong", ""},
	}
	for _, tt := range tests {
		key := NewPhotoKey(tt.filename)
		assert.True(t, strings.HasPrefix(key, PhotoPrefix), key)
		assert.True(t, strings.HasSuffix(key, tt.suffix), "%s → %s", tt.filename, key)
		assert.True(t, ValidPhotoKey(key), key)
	}
	assert.NotEqual(t, NewPhotoKey("a.jpg"), NewPhotoKey("a.jpg"))
}

func TestValidPhotoKey(t *testing.T) {
	assert.True(t, ValidPhotoKey("photos/abc.jpg"))
	assert.False(t, ValidPhotoKey("photos/"))
	assert.False(t, ValidPhotoKey("photos/../secret"))
	assert.False(t, ValidPhotoKey("photos/a/b.jpg"))
	assert.False(t, ValidPhotoKey("other/abc.jpg"))
}

func TestWrapError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	assert.True(t, errors.Is(wrapError(notFound), storage.ErrNotFound))

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}
	assert.False(t, errors.Is(wrapError(denied), storage.ErrNotFound))
}
