package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/talentpipe/ops-api/config"
	"github.com/talentpipe/ops-api/internal/analytics"
	"github.com/talentpipe/ops-api/internal/email"
	"github.com/talentpipe/ops-api/internal/handler"
	dashboardHandler "github.com/talentpipe/ops-api/internal/handler/dashboard"
	exportHandler "github.com/talentpipe/ops-api/internal/handler/export"
	notificationHandler "github.com/talentpipe/ops-api/internal/handler/notification"
	"github.com/talentpipe/ops-api/internal/middleware"
	"github.com/talentpipe/ops-api/internal/notification"
	"github.com/talentpipe/ops-api/internal/reminder"
	"github.com/talentpipe/ops-api/internal/repository/postgres"
	"github.com/talentpipe/ops-api/internal/router"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/messaging"
	redisbroker "github.com/talentpipe/ops-api/pkg/messaging/redis"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("ops")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	candidateRepo := postgres.NewCandidateRepository(db)
	requirementRepo := postgres.NewRequirementRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)

	// Broker and notification-log persistence share the Redis connection
	// when one is configured; otherwise both run locally.
	var broker messaging.Broker
	var notifLog notification.Log
	if cfg.Redis.URL != "" {
		zl := log.Logger
		rb, err := redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		broker = rb
		notifLog = notification.NewRedisLog(rb.Client(), cfg.Notification.StorageKey)
	} else {
		broker = messaging.NewLocalBroker()
		notifLog = notification.NewFileLog(cfg.Notification.FilePath)
	}
	defer broker.Close()

	notifStore := notification.NewStore(notifLog, appLogger, appMetrics)
	if err := notifStore.Init(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to load notification log")
	}

	snapStore := snapshot.NewStore(
		candidateRepo, requirementRepo, clientRepo, interviewRepo,
		broker, appLogger, appMetrics,
	)
	analyticsSvc := analytics.NewService(snapStore, appLogger, appMetrics)

	// Background loops share one cancel scope; shutting the process down
	// stops all three timing sources together.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := notification.NewFeed(broker, notifStore, appLogger)
	if err := feed.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start notification feed")
	}

	var notifier reminder.Notifier = reminder.NewFeedNotifier(broker)
	if cfg.Email.Enabled {
		emailSvc := email.NewService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
		notifier = reminder.NewFanoutNotifier(notifier, email.NewReminderNotifier(emailSvc, cfg.Email.To))
	}
	scheduler := reminder.NewScheduler(snapStore, notifier, cfg.Reminder.ToSchedulerConfig(), appLogger, appMetrics)
	go scheduler.Start(ctx)

	if cfg.Notification.Simulator.Enabled {
		simulator := notification.NewSimulator(cfg.Notification.ToSimulatorConfig(), broker, appLogger)
		go simulator.Start(ctx)
	}

	// Initial snapshot; a partial or failed fetch is non-fatal, the
	// dashboard serves whatever arrived and users can refresh.
	if _, err := snapStore.Refresh(ctx); err != nil {
		appLogger.Error(err, "initial snapshot refresh failed")
	}

	routerCfg := router.Config{CORS: middleware.DefaultCORSConfig()}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(
		routerCfg,
		handler.NewHandler(),
		dashboardHandler.NewHandler(analyticsSvc, snapStore),
		exportHandler.NewHandler(snapStore, appLogger),
		notificationHandler.NewHandler(notifStore),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	// Stop the timers and mark the snapshot store torn down so a fetch in
	// flight is discarded instead of being applied.
	cancel()
	snapStore.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
