package server

import (
	"net/http"

	"medshare/internal/apiserver/auth"
	"medshare/internal/apiserver/feedback"
	"medshare/internal/apiserver/medicine"
	"medshare/internal/apiserver/photo"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 基础:
//   - GET  /health           - 健康检查
//   - GET  /metrics          - Prometheus 指标
//   - GET  /api/openapi.yaml - OpenAPI 文档
//
// 用户 (auth):
//   - POST /api/signup - 注册
//   - POST /api/login  - 登录，返回令牌
//
// 药品 (medicine):
//   - POST   /api/donate                     - 捐赠
//   - GET    /api/login/home                 - 全部药品
//   - GET    /api/collect-medicine/{address} - 按地址列出
//   - DELETE /api/delete/{medicinename}      - 删除一条
//   - GET    /api/request/{medicinename}     - 申领
//   - GET    /api/autocomplete/{query}       - 名称自动补全
//
// 评分 (feedback):
//   - POST /api/feedback                 - 提交评分
//   - GET  /api/feedback/{userId}        - 某用户收到的评分
//   - GET  /api/api/feedback/{userId}    - 同上（旧路径）
//
// 照片 (photo，配置对象存储时):
//   - POST /api/photos        - 上传
//   - GET  /api/photos/{name} - 下载
//
// 中间件顺序（外到内）：CORS → 指标 → 访问日志 → 认证
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())
	mux.HandleFunc("GET /api/openapi.yaml", h.OpenAPISpec)

	authHandler := auth.NewHandler(h.store, h.authCfg)
	authHandler.RegisterRoutes(mux)

	medicineHandler := medicine.NewHandler(h.store, h.cache)
	medicineHandler.RegisterRoutes(mux)

	feedbackHandler := feedback.NewHandler(h.store)
	feedbackHandler.RegisterRoutes(mux)

	if h.photos != nil {
		photoHandler := photo.NewHandler(h.photos)
		photoHandler.RegisterRoutes(mux)
	}

	var handler http.Handler = mux
	handler = auth.Middleware(h.authCfg, h.store)(handler)
	handler = accessLogMiddleware(h.logger)(handler)
	handler = h.metrics.MetricsMiddleware(handler)
	return corsMiddleware(handler)
}
