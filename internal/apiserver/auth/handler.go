package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"
)

// 返回给客户端的消息
const (
	msgRegistered         = "User registered successfully"
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgServerError        = "Server error"
)

// UserStore 用户存储接口
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Handler 认证 HTTP 处理器
type Handler struct {
	store UserStore
	cfg   Config
}

// NewHandler 创建认证处理器
func NewHandler(store UserStore, cfg Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/signup", h.Signup)
	mux.HandleFunc("POST /api/login", h.Login)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// Handlers
// ============================================================================

// Signup 用户注册
// 重复 email 由存储层唯一索引检测，不做预查询
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		log.Printf("[auth.signup] HashPassword error: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	user := model.NewUser(&req, hash)
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeMessage(w, http.StatusBadRequest, msgEmailExists)
			return
		}
		log.Printf("[auth.signup] CreateUser error: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	log.Printf("[auth] User registered: %s", user.ID)
	writeMessage(w, http.StatusCreated, msgRegistered)
}

// Login 用户登录
// 未知邮箱与错误密码返回相同响应
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("[auth.login] GetUserByEmail error: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if user == nil || !CheckPassword(req.Password, user.PasswordHash) {
		writeMessage(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	token, err := GenerateToken(h.cfg, user.ID)
	if err != nil {
		log.Printf("[auth.login] GenerateToken error: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// ============================================================================
// 工具函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage 认证路由使用 message 字段返回结果
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
