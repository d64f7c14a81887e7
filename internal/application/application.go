// Package application собирает зависимости и запускает модули сервиса.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"deal_radar/internal/config"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/internal/infrastructure/cache"
	"deal_radar/internal/infrastructure/marketplace"
	"deal_radar/internal/infrastructure/notifier"
	"deal_radar/internal/infrastructure/persistence"
	"deal_radar/internal/server"
	"deal_radar/internal/transport/bot"
	"deal_radar/internal/transport/bot/handler"
	"deal_radar/internal/worker"
	"deal_radar/pkg/application/connectors"
	"deal_radar/pkg/application/modules"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
	"deal_radar/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run блокируется до отмены ctx или падения любого из модулей.
func Run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	g, ctx := errgroup.WithContext(ctx)

	// Хранилища
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(context.WithoutCancel(ctx))

	if cfg.Postgres.AutoMigrate {
		if err := persistence.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("persistence.EnsureSchema: %w", err)
		}
	}

	rds := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	rdb := rds.Client(ctx)
	defer rds.Close(context.WithoutCancel(ctx))

	monitorRepo := persistence.NewMonitorRepository(db)
	bidRepo := persistence.NewBidRepository(db)
	seen := cache.NewSeenStore(rdb)

	// Внешние системы
	market := marketplace.New(cfg.Marketplace)

	tgBot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("telego.NewBot: %w", err)
	}
	dispatcher := notifier.NewTelegramBot(tgBot)

	// Циклы опроса
	metrics := worker.NewMetrics(prometheus.DefaultRegisterer)

	scanner := worker.NewDealScanner(market, monitorRepo, seen, dispatcher,
		worker.WithSearchLimit(cfg.Monitoring.SearchLimit),
		worker.WithDealScannerMetrics(metrics),
	)
	tracker := worker.NewBidTracker(market, bidRepo, dispatcher,
		worker.WithBidTrackerMetrics(metrics),
	)

	monitoringOpts := []worker.MonitoringOption{
		worker.WithDealScanInterval(cfg.Monitoring.DealScanInterval),
		worker.WithBidCheckInterval(cfg.Monitoring.BidCheckInterval),
		worker.WithCycleTimeout(cfg.Monitoring.CycleTimeout),
		worker.WithMonitoringMetrics(metrics),
	}
	if cfg.Monitoring.DistributedLock {
		monitoringOpts = append(monitoringOpts, worker.WithLocker(cache.NewLockManager(rdb)))
	}

	monitoring := worker.NewMonitoring(scanner, tracker, monitoringOpts...)

	switch cfg.Monitoring.SchedulerMode {
	case config.SchedulerModeAsynq:
		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
			Concurrency:   cfg.Asynq.Concurrency,
		}.Run(ctx, g, modules.AsynqQueues{cfg.Asynq.Queue: 1}, monitoring.AsynqHandlers()...)

		modules.AsynqScheduler{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
		}.Run(ctx, g, monitoring.PeriodicTasks(cfg.Asynq.Queue)...)

		if err := monitoring.MarkScheduled(ctx); err != nil {
			return fmt.Errorf("monitoring.MarkScheduled: %w", err)
		}
	default:
		if err := monitoring.Start(ctx); err != nil {
			return fmt.Errorf("monitoring.Start: %w", err)
		}
	}

	g.Go(func() error {
		<-ctx.Done()
		monitoring.Stop()
		return nil
	})

	logger(ctx).Info("monitoring configured",
		slog.String("scheduler", cfg.Monitoring.SchedulerMode),
		slog.Duration("deal-scan-interval", cfg.Monitoring.DealScanInterval),
		slog.Duration("bid-check-interval", cfg.Monitoring.BidCheckInterval),
	)

	// Интерфейсы пользователя
	subs := subscription.NewService(monitorRepo, bidRepo, market)

	telegramBot := bot.New(tgBot, handler.New(subs, monitoring, seen), cfg.Bot.AdminID)
	g.Go(func() error {
		if err := telegramBot.Run(ctx); err != nil {
			return fmt.Errorf("telegramBot.Run: %w", err)
		}
		return nil
	})

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		middlewarex.BearerAuth(cfg.HTTP.AdminToken),
	)

	server.NewServer(
		server.NewMonitorServer(subs),
		server.NewBidServer(subs),
		server.NewMonitoringServer(monitoring, subs, seen),
	).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsAddress}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}
