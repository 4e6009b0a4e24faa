// Package main API Server 入口
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medshare/internal/apiserver/auth"
	"medshare/internal/apiserver/server"
	"medshare/internal/config"
	"medshare/internal/shared/infra"
	"medshare/pkg/logging"
)

func main() {
	configDir := flag.String("config", "", "directory containing {env}.yaml")
	flag.Parse()
	if *configDir != "" {
		config.SetConfigDir(*configDir)
	}

	// 加载配置（.env.{env} → configs/{env}.yaml → 环境变量）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "api-server",
	})
	logger.Info("Starting API Server", slog.String("env", string(cfg.Env)), slog.String("config", cfg.String()))

	// 初始化存储、建议缓存、照片存储
	ctx := context.Background()
	inf, err := infra.New(ctx, cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to init infrastructure")
		os.Exit(1)
	}
	defer func() {
		if err := inf.Close(); err != nil {
			logger.WithError(err).Warn("Infrastructure close error")
		}
	}()

	deps := server.Deps{
		Store: inf.Storage,
		Cache: inf.Cache,
		Auth: auth.Config{
			TokenSecret:  cfg.Auth.TokenSecret,
			TokenTTL:     cfg.Auth.TokenTTL,
			RequireToken: cfg.Auth.RequireToken,
			BcryptCost:   cfg.Auth.BcryptCost,
		},
		Logger: logger,
	}
	// 未配置 MinIO 时 inf.Photos 为 nil 指针，不能直接赋给接口
	if inf.Photos != nil {
		deps.Photos = inf.Photos
	}

	h := server.NewHandler(deps)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// 优雅关闭
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan

		logger.Info("Shutting down server", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Server shutdown error")
		}
	}()

	logger.Info("API Server listening", slog.String("addr", srv.Addr),
		slog.Bool("require_token", cfg.Auth.RequireToken),
		slog.Bool("cache", cfg.CacheEnabled()),
		slog.Bool("photos", cfg.PhotosEnabled()))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("Server error")
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped")
}
