package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskboard/internal/core/config"
	"taskboard/internal/core/logger"
	"taskboard/internal/core/ratelimit"
	"taskboard/internal/core/server"
	"taskboard/internal/repo"
	"taskboard/internal/service"
	"taskboard/internal/transport/http/handler"
	"taskboard/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 存储（失败直接 Fatal）
	stores, err := repo.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("store open", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer stores.Close()
	log.Info("store ready", zap.String("backend", stores.Backend))

	limiter, closeLimiter, err := ratelimit.FromConfig(ctx, cfg.RateLimit, cfg.Redis)
	if err != nil {
		log.Fatal("rate limiter", zap.Error(err))
	}
	defer closeLimiter()

	userSvc := service.NewUserService(stores.Users, log)
	taskSvc := service.NewTaskService(stores.Tasks, stores.Users, log)

	r := router.NewAPIEngine(router.Deps{
		Log:     log,
		Env:     cfg.App.Env,
		HTTP:    cfg.App.HTTP,
		Limiter: limiter,
		Ping:    stores.Ping,
		Registry: router.NewRegistry(
			handler.NewUserHandler(userSvc, log),
			handler.NewTaskHandler(taskSvc, log),
		),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("task api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
		zap.Bool("rate_limit", limiter != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("task api start FAILED", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("task api stopped gracefully")
}
