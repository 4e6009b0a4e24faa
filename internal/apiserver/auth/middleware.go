package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"medshare/internal/shared/model"
)

// UserLookup 中间件按令牌中的用户 ID 确认用户仍然存在
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// protectedRoute 需要令牌的路由（method + 路径前缀）
type protectedRoute struct {
	method string
	prefix string
	exact  bool
}

var protectedRoutes = []protectedRoute{
	{http.MethodPost, "/api/donate", true},
	{http.MethodDelete, "/api/delete/", false},
	{http.MethodGet, "/api/request/", false},
	{http.MethodPost, "/api/feedback", true},
	{http.MethodPost, "/api/photos", true},
}

func isProtectedRoute(method, path string) bool {
	for _, r := range protectedRoutes {
		if r.method != method {
			continue
		}
		if r.exact && path == r.prefix {
			return true
		}
		if !r.exact && strings.HasPrefix(path, r.prefix) {
			return true
		}
	}
	return false
}

// Middleware 创建 JWT 认证中间件
// cfg.RequireToken == false 时直接放行所有请求；否则只校验写操作和药品申领路由
// users 非 nil 时令牌对应的用户必须存在；携带合法令牌的请求会把用户 ID 注入 context
func Middleware(cfg Config, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireToken || !isProtectedRoute(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := ParseToken(cfg, strings.TrimSpace(parts[1]))
			if err != nil {
				log.Printf("[auth] token parse error: %v", err)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if users != nil {
				user, err := users.GetUserByID(r.Context(), claims.UserID)
				if err != nil {
					log.Printf("[auth] GetUserByID error: %v", err)
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if user == nil {
					writeError(w, http.StatusUnauthorized, "user not found")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}
