// Package server 路由配置与核心基础设施
//
// 各领域的路由由独立包注册（auth、medicine、feedback、photo），本包负责：
//   - server.go: 依赖注入、健康检查、OpenAPI 文档
//   - router.go: 路由与中间件组装
//   - middleware.go: CORS、访问日志
//   - metrics.go: Prometheus 指标
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"medshare/api"
	"medshare/internal/apiserver/auth"
	"medshare/internal/apiserver/photo"
	"medshare/internal/shared/cache"
	"medshare/internal/shared/storage"
	"medshare/pkg/logging"
)

// healthTimeout 健康检查时存储 Ping 的超时
const healthTimeout = 2 * time.Second

// Deps Handler 依赖
type Deps struct {
	Store    storage.PersistentStore // 必填
	Cache    cache.SuggestionCache   // 可选，nil 时不缓存自动补全
	Photos   photo.ObjectStore       // 可选，nil 时不注册照片路由
	Auth     auth.Config
	Logger   *logging.Logger     // 可选，访问日志
	Registry *prometheus.Registry // 可选，nil 时使用独立 Registry
}

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 把存储、缓存、对象存储注入各领域处理器
//   - 组装中间件
//   - 健康检查与指标
type Handler struct {
	store   storage.PersistentStore
	cache   cache.SuggestionCache
	photos  photo.ObjectStore
	authCfg auth.Config
	logger  *logging.Logger
	metrics *Metrics
}

// NewHandler 创建 Handler 实例
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		store:   deps.Store,
		photos:  deps.Photos,
		authCfg: deps.Auth,
		logger:  deps.Logger,
		metrics: NewMetrics("medshare", deps.Registry),
	}
	if h.logger == nil {
		h.logger = logging.Default("api-server")
	}

	c := deps.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	h.cache = h.metrics.InstrumentCache(c)
	return h
}

// GetMetrics 返回指标实例
func (h *Handler) GetMetrics() *Metrics {
	return h.metrics
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 存储可用时返回 {"status": "ok"}，否则 503。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("[health] store ping error: %v", err)
		h.metrics.SetStoreUp(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.metrics.SetStoreUp(true)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// OpenAPISpec 返回内嵌的 OpenAPI 文档
//
// 路由: GET /api/openapi.yaml
func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	data, err := api.OpenAPISpec()
	if err != nil {
		log.Printf("[openapi] read document error: %v", err)
		writeError(w, http.StatusInternalServerError, "openapi document unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError 将错误信息以 JSON 格式写入 HTTP 响应
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
