// Package photo 药品照片上传与下载
//
// 上传返回的对象键（photos/{uuid}{ext}）即 Medicine.photo 字段的取值，
// 在其前面加上 /api/ 就是下载地址。
package photo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	objstore "medshare/internal/shared/minio"
	"medshare/internal/shared/storage"
)

// MaxPhotoSize 单张照片上限 10 MiB
const MaxPhotoSize = 10 << 20

// formField multipart 字段名
const formField = "photo"

// ObjectStore 照片对象存储接口
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, *objstore.ObjectInfo, error)
}

// Handler 照片处理器
type Handler struct {
	objects ObjectStore
}

// NewHandler 创建照片处理器
func NewHandler(objects ObjectStore) *Handler {
	return &Handler{objects: objects}
}

// RegisterRoutes 注册照片路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/photos", h.Upload)
	mux.HandleFunc("GET /api/photos/{name}", h.Download)
}

type uploadResponse struct {
	Photo string `json:"photo"`
}

// Upload 接收 multipart 字段 photo，仅允许图片类型
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// 预留 1 MiB 给 multipart 其他部分
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoSize+1<<20)
	file, header, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
			return
		}
		writeError(w, http.StatusBadRequest, "photo is required")
		return
	}
	defer file.Close()

	if header.Size <= 0 {
		writeError(w, http.StatusBadRequest, "photo is required")
		return
	}
	if header.Size > MaxPhotoSize {
		writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
		return
	}

	contentType, err := detectContentType(file)
	if err != nil {
		log.Printf("[photo.upload] read error: %v", err)
		writeError(w, http.StatusBadRequest, "photo is required")
		return
	}
	if !allowedTypes[contentType] {
		writeError(w, http.StatusBadRequest, "photo must be an image")
		return
	}

	key := objstore.NewPhotoKey(header.Filename)
	if err := h.objects.Upload(r.Context(), key, file, header.Size, contentType); err != nil {
		log.Printf("[photo.upload] Upload error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	log.Printf("[photo] Uploaded %s (%d bytes)", key, header.Size)
	writeJSON(w, http.StatusCreated, uploadResponse{Photo: key})
}

// Download 按对象键返回照片内容
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := objstore.PhotoPrefix + r.PathValue("name")
	if !objstore.ValidPhotoKey(key) {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}

	reader, info, err := h.objects.Download(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		log.Printf("[photo.download] Download error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to download photo")
		return
	}
	defer reader.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		log.Printf("[photo.download] Stream error: %v", err)
	}
}

// allowedTypes 按内容嗅探得到的位图类型；SVG 可携带脚本，不接受
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// detectContentType 按文件内容嗅探类型，忽略客户端声明
// 读取后将文件指针复位
func detectContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
