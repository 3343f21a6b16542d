package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/societyhub/apartment-system/internal/api"
	"github.com/societyhub/apartment-system/internal/core/service"
	"github.com/societyhub/apartment-system/internal/infrastructure/config"
	redisstore "github.com/societyhub/apartment-system/internal/infrastructure/db/redis"
	"github.com/societyhub/apartment-system/internal/infrastructure/http/handlers"
	"github.com/societyhub/apartment-system/internal/infrastructure/queue"
	"github.com/societyhub/apartment-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "create indexes or tables before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "societyd"})

	// --- Storage ---
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close(context.Background()) }()
	if migrate {
		if err := st.migrate(ctx); err != nil {
			return err
		}
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		Namespace: cfg.Redis.Namespace,
		DedupTTL:  cfg.Redis.DedupTTL,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Services ---
	notifications := service.NewNotificationService(st.repos.Notifications, log)
	dispatcher := queue.NewDispatcher(cfg.Notifications.Workers, notifications, log)

	authSvc := service.NewAuthService(st.repos.Users, rdb.Sessions(), cfg.SessionSecret, cfg.SessionTTL, log)
	if cfg.DemoData {
		authSvc.WithOnboarding(service.NewDemoOnboarding(st.repos, log))
	}

	e := api.NewRouter(api.Services{
		Auth:        authSvc,
		Apartments:  service.NewApartmentService(st.repos.Apartments, log),
		Maintenance: service.NewMaintenanceService(st.repos.Maintenance, st.repos.Apartments, log),
		Payments:    service.NewPaymentService(st.repos.Payments, st.repos.Apartments, log),
		Visitors: service.NewVisitorService(
			st.repos.Visitors,
			st.repos.Apartments,
			rdb.ApprovalDedup(),
			dispatcher,
			log,
		),
		Announcements: service.NewAnnouncementService(st.repos.Announcements, log),
	}, api.Options{
		CookieSecure:   cfg.CookieSecure,
		LoginPerSecond: cfg.RateLimit.LoginPerSecond,
		LoginBurst:     cfg.RateLimit.LoginBurst,
		Readiness: map[string]handlers.Pinger{
			cfg.Store.Driver: st.ping,
			"redis":          handlers.RedisPinger(rdb.Client),
		},
	}, log)

	// --- Run ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)

		// Workers stop after the server so in-flight requests can still enqueue.
		cancelWorkers()
		dispatcher.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
