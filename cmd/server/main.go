package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/heart-badge/config"
	"github.com/d60-Lab/heart-badge/internal/api"
	"github.com/d60-Lab/heart-badge/internal/api/handler"
	"github.com/d60-Lab/heart-badge/internal/badge"
	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/notify"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/internal/service"
	"github.com/d60-Lab/heart-badge/pkg/database"
	"github.com/d60-Lab/heart-badge/pkg/logger"
	"github.com/d60-Lab/heart-badge/pkg/tracing"
)

func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.Log.Level))
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		mustDo(sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}))
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing := must(tracing.Init(ctx, "heart-badge", cfg.Trace.Endpoint))
	defer shutdownTracing(ctx)

	db := must(database.Open(cfg.Database))
	mustDo(database.Migrate(db))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	mustDo(rdb.Ping(ctx).Err())

	badgeRepo := repository.NewBadgeRepository(db)
	userBadgeRepo := repository.NewUserBadgeRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	counterSvc := counter.NewService(counter.NewCache(rdb), interactionRepo, cfg.Badge.StoreTimeout)
	evaluator := badge.NewEvaluator(badge.NewRules(counterSvc, badgeRepo))
	deduper := notify.NewDeduper(rdb, cfg.Badge.NotifyTTL)

	scanner := service.NewScanner(badgeRepo, userBadgeRepo, notificationRepo, evaluator, deduper, cfg.Badge.NotifyTTL, cfg.Badge.ScanQueueSize)
	stopScanner := scanner.Start(cfg.Badge.ScanWorkers)

	h := handler.New(
		service.NewBadgeService(badgeRepo, userBadgeRepo, evaluator),
		service.NewInteractionService(interactionRepo, badgeRepo, counterSvc, scanner),
		service.NewNotificationService(notificationRepo),
	)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: api.NewRouter(cfg, h)}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_ = stopScanner(shutdownCtx)
	_ = srv.Shutdown(shutdownCtx)
	_ = rdb.Close()
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
