package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = "3000"
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultDBName     = "medshare"
	defaultBcryptCost = 10
	defaultBucket     = "medshare-photos"
)

// ErrMissingTokenSecret TOKEN_SECRET 未配置
var ErrMissingTokenSecret = errors.New("TOKEN_SECRET is required")

// Load 加载配置
//  1. 加载 .env.{env}（dev/test）
//  2. 加载 YAML: 默认值 → {env}.yaml
//  3. 环境变量覆盖
//  4. 校验
func Load() (*Config, error) {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)

	yamlCfg, loadedFrom, err := loadYAMLConfig(env)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(yamlCfg); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:            env,
		DatabaseDriver: detectDatabaseDriver(yamlCfg.Database.Driver, yamlCfg.Database.URI),
		DatabaseURL:    yamlCfg.Database.URI,
		DatabaseDBName: yamlCfg.Database.Name,
		RedisURL:       buildRedisURL(yamlCfg.Redis),
		APIPort:        yamlCfg.Server.Port,
		Auth:           yamlCfg.Auth,
		MinIO:          yamlCfg.MinIO,
		Log:            yamlCfg.Log,
		ConfigFilePath: loadedFrom,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultYAMLConfig() *YAMLConfig {
	return &YAMLConfig{
		Server:   ServerConfig{Port: defaultPort},
		Database: DatabaseConfig{URI: defaultMongoURI, Name: defaultDBName},
		Redis:    RedisConfig{Port: 6379},
		MinIO:    MinIOConfig{Bucket: defaultBucket},
		Auth:     AuthConfig{BcryptCost: defaultBcryptCost},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// loadYAMLConfig 加载 YAML 配置文件，文件不存在时只使用默认值
func loadYAMLConfig(env Environment) (*YAMLConfig, string, error) {
	cfg := defaultYAMLConfig()

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range effectiveConfigPaths() {
		path := filepath.Join(base, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, path, nil
	}
	return cfg, "", nil
}

// applyEnvOverrides 环境变量覆盖 YAML 配置
func applyEnvOverrides(cfg *YAMLConfig) error {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Database.URI = getEnv("DB_URI", cfg.Database.URI)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)

	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	cfg.MinIO.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	cfg.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.MinIO.Bucket)

	cfg.Auth.TokenSecret = os.Getenv("TOKEN_SECRET")

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MINIO_USE_SSL %q: %w", v, err)
		}
		cfg.MinIO.UseSSL = b
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.Auth.TokenTTL = d
	}
	if v := os.Getenv("REQUIRE_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid REQUIRE_AUTH %q: %w", v, err)
		}
		cfg.Auth.RequireToken = b
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		cfg.Auth.BcryptCost = n
	}
	return nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Auth.TokenSecret == "" {
		return ErrMissingTokenSecret
	}
	if c.APIPort == "" {
		return errors.New("server port is empty")
	}
	if c.DatabaseURL == "" {
		return errors.New("DB_URI is empty")
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("negative token ttl %s", c.Auth.TokenTTL)
	}
	return nil
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// CacheEnabled 是否配置了 Redis 建议缓存
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// PhotosEnabled 是否配置了 MinIO 照片存储
func (c *Config) PhotosEnabled() bool {
	return c.MinIO.Endpoint != ""
}

// String 返回配置摘要（隐藏密码）
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Driver: %s, DB: %s, Redis: %s, MinIO: %s}",
		c.Env, c.DatabaseDriver, maskPassword(c.DatabaseURL), maskPassword(c.RedisURL), c.MinIO.Endpoint)
}
