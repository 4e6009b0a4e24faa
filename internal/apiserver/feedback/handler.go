// Package feedback 用户评分 HTTP 处理器
package feedback

import (
	"encoding/json"
	"log"
	"net/http"

	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"
)

const (
	msgSubmitted    = "Feedback submitted successfully."
	msgSubmitFailed = "Error submitting feedback."
	msgInternal     = "Internal server error"
)

// Handler 评分处理器
type Handler struct {
	store storage.FeedbackStore
}

// NewHandler 创建评分处理器
func NewHandler(store storage.FeedbackStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册评分路由
// /api/api/feedback/{userId} 保留历史客户端使用的双前缀路径
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/feedback", h.Submit)
	mux.HandleFunc("GET /api/feedback/{userId}", h.ListByRatedUser)
	mux.HandleFunc("GET /api/api/feedback/{userId}", h.ListByRatedUser)
}

// Submit 提交评分，rating 与用户是否存在均不校验
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.CreateFeedback(r.Context(), model.NewFeedback(&req)); err != nil {
		log.Printf("[feedback.submit] CreateFeedback error: %v", err)
		writeError(w, http.StatusInternalServerError, msgSubmitFailed)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": msgSubmitted})
}

// ListByRatedUser 列出某用户收到的全部评分
func (h *Handler) ListByRatedUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListFeedbackByRatedUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		log.Printf("[feedback.list] ListFeedbackByRatedUser error: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if list == nil {
		list = []*model.Feedback{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
