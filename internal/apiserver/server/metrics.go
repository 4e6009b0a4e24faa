// Package server Prometheus 指标导出
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medshare/internal/shared/cache"
)

// Metrics 包含所有 API Server 指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// 存储可用性（最近一次健康检查）
	StoreUp prometheus.Gauge

	// 自动补全缓存命中情况
	SuggestionLookups *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics 创建指标实例并注册到 reg
// reg 为 nil 时使用独立的 Registry，便于测试中重复创建
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		StoreUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_up",
				Help:      "Whether the persistent store answered the last health check",
			},
		),
		SuggestionLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestion_cache_lookups_total",
				Help:      "Autocomplete cache lookups by result",
			},
			[]string{"result"},
		),
		gatherer: reg,
	}
}

// MetricsMiddleware 创建 HTTP 指标中间件
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		// 包装 ResponseWriter 以捕获状态码
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)
		status := strconv.Itoa(wrapped.statusCode)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// Handler 返回 Prometheus HTTP Handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// SetStoreUp 记录健康检查结果
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.StoreUp.Set(1)
	} else {
		m.StoreUp.Set(0)
	}
}

// responseWriter 包装 http.ResponseWriter 以捕获状态码
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// wrapResponseWriter 已包装过的直接复用
func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// paramRoutes 带路径参数的路由前缀
var paramRoutes = []string{
	"/api/collect-medicine/",
	"/api/delete/",
	"/api/request/",
	"/api/autocomplete/",
	"/api/api/feedback/",
	"/api/feedback/",
	"/api/photos/",
}

// normalizePath 规范化路径，将路径参数替换为占位符
// 例如 /api/request/Paracetamol -> /api/request/{param}
func normalizePath(path string) string {
	for _, prefix := range paramRoutes {
		if len(path) > len(prefix) && strings.HasPrefix(path, prefix) {
			return prefix + "{param}"
		}
	}
	return path
}

// instrumentedCache 统计自动补全缓存命中率
type instrumentedCache struct {
	cache.SuggestionCache
	lookups *prometheus.CounterVec
}

// InstrumentCache 为建议缓存加上命中统计
func (m *Metrics) InstrumentCache(c cache.SuggestionCache) cache.SuggestionCache {
	return &instrumentedCache{SuggestionCache: c, lookups: m.SuggestionLookups}
}

func (c *instrumentedCache) GetSuggestions(ctx context.Context, query string) ([]string, int64, bool, error) {
	names, gen, hit, err := c.SuggestionCache.GetSuggestions(ctx, query)
	switch {
	case err != nil:
		c.lookups.WithLabelValues("error").Inc()
	case hit:
		c.lookups.WithLabelValues("hit").Inc()
	default:
		c.lookups.WithLabelValues("miss").Inc()
	}
	return names, gen, hit, err
}
