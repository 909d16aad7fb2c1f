package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/hufspace/classroom-finder/internal/config"
	"github.com/hufspace/classroom-finder/internal/database"
	"github.com/hufspace/classroom-finder/internal/finder"
	"github.com/hufspace/classroom-finder/internal/handler"
	"github.com/hufspace/classroom-finder/internal/logger"
	"github.com/hufspace/classroom-finder/internal/middleware"
	"github.com/hufspace/classroom-finder/internal/model"
	"github.com/hufspace/classroom-finder/internal/occupancy"
	"github.com/hufspace/classroom-finder/internal/queue"
	"github.com/hufspace/classroom-finder/internal/repository"
	"github.com/hufspace/classroom-finder/internal/router"
	"github.com/hufspace/classroom-finder/internal/schedule"
	queue_publisher "github.com/hufspace/classroom-finder/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "classroom-finder")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	index := loadIndex(ctx, cfg, log)
	log.Info("schedule loaded",
		zap.String("source", cfg.ScheduleSource), zap.Int("rooms", index.Rooms()))

	var opts []finder.Option
	if cfg.EventsEnabled {
		pub := queue_publisher.New(cfg.AMQPURL, log)
		defer func() { _ = pub.Close() }()
		opts = append(opts, finder.WithPublisher(pub))
	}
	if cfg.ConsumeEvents {
		consumer := queue.Consumer{
			URL:    cfg.AMQPURL,
			Log:    queue.AuditLog{Path: cfg.AuditLogPath},
			Logger: log,
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("occupancy consumer stopped", zap.Error(err))
			}
		}()
	}

	svc := finder.NewService(index, occupancy.NewTracker(), log, opts...)

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unavailable; response cache and rate limit disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e)
	router.RegisterClassrooms(e,
		handler.NewClassroomHandler(svc, log),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// loadIndex reads the schedule from the configured source.  Any failure
// leaves the server running on an empty index so every query answers
// "data unavailable" instead of the process exiting.
func loadIndex(ctx context.Context, cfg config.Config, log *zap.Logger) model.ScheduleIndex {
	switch cfg.ScheduleSource {
	case config.SourceMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			log.Warn("mysql unavailable; starting without schedule", zap.Error(err))
			return model.ScheduleIndex{}
		}
		defer db.Close()
		idx, err := repository.NewScheduleRepo(db).Load(ctx)
		if err != nil {
			log.Warn("load schedule from mysql failed; starting without schedule", zap.Error(err))
			return model.ScheduleIndex{}
		}
		return idx
	default:
		idx, err := schedule.LoadFile(cfg.ScheduleFile)
		if err != nil {
			log.Warn("load schedule file failed; starting without schedule",
				zap.String("path", cfg.ScheduleFile), zap.Error(err))
			return model.ScheduleIndex{}
		}
		return idx
	}
}
