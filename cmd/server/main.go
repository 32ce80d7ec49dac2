package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"habittracker/internal/config"
	"habittracker/internal/handler"
	"habittracker/internal/httpserver"
	"habittracker/internal/notifier"
	"habittracker/internal/repository"
	"habittracker/internal/scheduler"
	"habittracker/internal/service/auth"
	"habittracker/internal/service/habit"
	pkgconfig "habittracker/pkg/config"
	"habittracker/pkg/db"
	"habittracker/pkg/logger"
	"habittracker/pkg/mq"
	"habittracker/pkg/redis"
	"habittracker/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(pkgconfig.GetEnv("CONFIG_PATH", "config/base.yaml"))
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting habit tracker...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, dbConn); err != nil {
		log.Fatal("Failed to ensure schema", zap.Error(err))
	}

	// Repositories
	habitRepo := repository.NewHabitRepository(dbConn, log)
	userRepo := repository.NewUserRepository(dbConn)

	// Services
	authSvc := auth.NewService(userRepo, cfg.JWT.Secret)
	habitSvc := habit.NewService(habitRepo, log)

	// Notifier
	tg, err := notifier.NewTelegram(cfg.Telegram.Token, cfg.Scheduler.NotifyTimeout.Duration)
	if err != nil {
		log.Fatal("Failed to init Telegram notifier", zap.Error(err))
	}

	// Optional reminder dedup guard
	var dedup scheduler.Deduper
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(cfg.Redis)
		dedup = util.NewDeduper(rdb, cfg.Scheduler.DedupTTL.Duration, log)
		log.Info("Reminder dedup guard enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	// Optional reminder event publisher
	var events scheduler.EventPublisher
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Failed to init MQ publisher", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
		log.Info("Reminder event publisher enabled")
	}

	// Reminder scheduler
	reminder := scheduler.New(
		scheduler.Config{
			Lookahead:     cfg.Scheduler.Lookahead.Duration,
			Period:        cfg.Scheduler.Period.Duration,
			NotifyTimeout: cfg.Scheduler.NotifyTimeout.Duration,
			ReportZone:    cfg.Scheduler.ReportZone(),
		},
		habitRepo,
		userRepo,
		tg,
		dedup,
		events,
		log,
	)
	if err := reminder.Start(); err != nil {
		log.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}

	// HTTP server
	authHandler := handler.NewAuthHandler(authSvc, log)
	habitHandler := handler.NewHabitHandler(habitSvc, log)
	userHandler := handler.NewUserHandler(userRepo, log)

	router := httpserver.NewRouter(authHandler, habitHandler, userHandler, cfg.JWT.Secret, dbConn)
	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("Habit tracker is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	reminder.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("Shutdown complete")
}
