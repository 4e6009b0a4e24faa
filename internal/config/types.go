// Package config 统一配置管理
//
// 配置加载优先级（高→低）：
//  1. 环境变量（通过 .env.{env} 文件或 shell/systemd 注入）
//  2. YAML 配置文件（{env}.yaml，如 dev.yaml、test.yaml、prod.yaml）
//  3. 代码硬编码默认值
//
// 凭据单一数据源：
//
//	密钥只存在环境变量 / .env 文件中（YAML 中不存储 TOKEN_SECRET、MinIO 密钥等）。
//
// 配置路径确定策略：
//  1. SetConfigDir（--config 命令行参数）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径：
//     - prod → /etc/medshare/
//     - dev/test → ./configs/
package config

import "time"

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig 数据库配置
// URI 前缀决定驱动：mongodb:// / mongodb+srv:// / postgres:// / file:
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "mongodb"（默认）、"postgres" 或 "sqlite"
	URI    string `yaml:"uri"`
	Name   string `yaml:"name"` // MongoDB 数据库名称
}

// RedisConfig 自动补全缓存配置，Host 与 URL 均为空时不启用缓存
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Password string `yaml:"-"` // 只从 REDIS_PASSWORD 环境变量读取
	URL      string `yaml:"url"`
}

// MinIOConfig 药品照片对象存储配置，Endpoint 为空时不注册照片路由
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"` // 例如 localhost:9000
	AccessKey string `yaml:"-"`        // 只从 MINIO_ACCESS_KEY 环境变量读取
	SecretKey string `yaml:"-"`        // 只从 MINIO_SECRET_KEY 环境变量读取
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket"`
}

// AuthConfig 认证配置
// 注意：TokenSecret 只从 TOKEN_SECRET 环境变量读取，不存储在 YAML 中
type AuthConfig struct {
	TokenSecret  string        `yaml:"-"`
	TokenTTL     time.Duration `yaml:"token_ttl"`     // 0 表示令牌不过期
	RequireToken bool          `yaml:"require_token"` // 写操作是否要求 Bearer 令牌
	BcryptCost   int           `yaml:"bcrypt_cost"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text 或 json
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env            Environment
	DatabaseDriver string // "mongodb", "postgres" 或 "sqlite"
	DatabaseURL    string
	DatabaseDBName string
	RedisURL       string // 为空时不启用缓存
	APIPort        string
	Auth           AuthConfig
	MinIO          MinIOConfig
	Log            LogConfig
	ConfigFilePath string // 实际加载的配置文件路径
}
