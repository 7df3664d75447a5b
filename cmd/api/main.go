package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/cache"
	"github.com/BruksfildServices01/campus-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/campus-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/campus-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/campus-scheduler/internal/jobs"
	loggerpkg "github.com/BruksfildServices01/campus-scheduler/internal/logger"
	"github.com/BruksfildServices01/campus-scheduler/internal/mail"
	"github.com/BruksfildServices01/campus-scheduler/internal/media"
	"github.com/BruksfildServices01/campus-scheduler/internal/notify"
	"github.com/BruksfildServices01/campus-scheduler/internal/routes"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := loggerpkg.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}

	clock := timezone.NewClock(cfg.Timezone)

	// ======================================================
	// CACHE (redis, or in-process when REDIS_ADDR is empty)
	// ======================================================
	var (
		blacklist cache.Blacklist = cache.NewMemoryBlacklist()
		limiter   cache.Limiter   = cache.NewMemoryLimiter()
	)
	if cfg.RedisEnabled() {
		rc, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Fatal("redis unavailable", zap.Error(err))
		}
		defer rc.Close()
		blacklist, limiter = rc, rc
	} else {
		logger.Warn("REDIS_ADDR not set, using in-process token blacklist and rate limiter")
	}

	// ======================================================
	// ASYNC WORKERS
	// ======================================================
	mailer := mail.New(cfg.Mail, logger)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	notifier := notify.NewDispatcher(
		infraRepo.NewNotificationGormRepository(db),
		infraRepo.NewUserGormRepository(db),
		mailer,
		logger,
	)

	reminders := jobs.NewReminders(infraRepo.NewAppointmentGormRepository(db), notifier, clock, logger)
	scheduler, err := jobs.NewScheduler(cfg.ReminderCron, clock().Location(), reminders, logger)
	if err != nil {
		logger.Fatal("reminder scheduler", zap.Error(err))
	}
	scheduler.Start()

	store := media.NewStore(cfg.S3)
	if !cfg.S3Enabled() {
		logger.Warn("S3_BUCKET not set, avatar uploads are disabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Logger:    logger,
		Clock:     clock,
		Tokens:    token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.VerifyTokenTTL),
		Blacklist: blacklist,
		Limiter:   limiter,
		Mailer:    mailer,
		Store:     store,
		Audit:     auditDispatcher,
		AuditLog:  auditLogger,
		Notifier:  notifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	// stop producers before draining the queues they feed
	scheduler.Stop()
	notifier.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
