package main

import (
	"context"
	"errors"
	"flag"
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

	"taskboard/internal/core/auth"
	"taskboard/internal/core/config"
	"taskboard/internal/core/logger"
	"taskboard/internal/core/ratelimit"
	"taskboard/internal/core/server"
	"taskboard/internal/repo"
	"taskboard/internal/service"
	"taskboard/internal/transport/http/handler"
	"taskboard/internal/transport/http/router"
	"taskboard/pkg/utils"
)

func main() {
	hashPw := flag.String("hash-password", "", "print a bcrypt hash for admin.passwordHash and exit")
	flag.Parse()
	if *hashPw != "" {
		h, err := utils.HashPassword(*hashPw)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.Admin.PasswordHash == "" {
		log.Warn("admin.passwordHash is empty, every login will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := repo.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("store open", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer stores.Close()
	if stores.Backend == repo.BackendMemory {
		log.Warn("admin api on memory store sees its own data only")
	}

	limiter, closeLimiter, err := ratelimit.FromConfig(ctx, cfg.RateLimit, cfg.Redis)
	if err != nil {
		log.Fatal("rate limiter", zap.Error(err))
	}
	defer closeLimiter()

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	adminH := handler.NewAdminHandler(service.NewAdminService(stores.Users, log), jwter, cfg.Admin.PasswordHash, log)

	r := router.NewAdminEngine(router.Deps{
		Log:      log,
		Env:      cfg.App.Env,
		HTTP:     cfg.App.HTTP,
		Limiter:  limiter,
		Ping:     stores.Ping,
		Registry: router.NewRegistry(adminH),
	}, adminH, jwter)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second, log)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("admin api stopped gracefully")
}
