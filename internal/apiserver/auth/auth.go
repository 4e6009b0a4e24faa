// Package auth 用户认证：注册/登录、JWT 令牌签发与校验、密码哈希、HTTP 中间件
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"medshare/pkg/logging"
)

// ctxKeyUserID 与日志共用同一个键
const ctxKeyUserID = logging.UserIDKey

// DefaultBcryptCost 默认 bcrypt 代价因子
const DefaultBcryptCost = 10

// maxPasswordBytes bcrypt 只使用密码的前 72 字节，超出部分截断而不是报错
const maxPasswordBytes = 72

// Config 认证配置
type Config struct {
	TokenSecret  string
	TokenTTL     time.Duration // 0 表示令牌不过期
	RequireToken bool          // 为 true 时写操作需要 Bearer 令牌
	BcryptCost   int
}

// ============================================================================
// 密码哈希
// ============================================================================

// HashPassword 使用 bcrypt 哈希密码，cost 超出合法范围时取边界值，0 使用默认值
func HashPassword(password string, cost int) (string, error) {
	switch {
	case cost == 0:
		cost = DefaultBcryptCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	bytes, err := bcrypt.GenerateFromPassword(passwordBytes(password), cost)
	return string(bytes), err
}

// CheckPassword 验证密码（常量时间比较）
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password)) == nil
}

// passwordBytes 按字节截断到 72，多字节字符可能被截在中间，与哈希时保持一致即可
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// ============================================================================
// JWT Token
// ============================================================================

// ErrInvalidToken 令牌签名、算法或声明不合法
var ErrInvalidToken = errors.New("invalid token")

// Claims JWT 声明
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken 签发 HS256 令牌，TokenTTL > 0 时附带 exp
func GenerateToken(cfg Config, userID string) (string, error) {
	if cfg.TokenSecret == "" {
		return "", errors.New("token secret is empty")
	}
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if cfg.TokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.TokenTTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.TokenSecret))
}

// ParseToken 解析并验证 JWT，返回其中的用户 ID
func ParseToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithUserID 将认证用户 ID 注入 context，访问日志同时记录该用户
func WithUserID(ctx context.Context, userID string) context.Context {
	return logging.SetUserID(ctx, userID)
}

// GetUserID 从 context 获取认证用户 ID，未认证时返回空字符串
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}
