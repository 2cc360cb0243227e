package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SriHarshaKodavati/openBill/config"
	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/events"
	"github.com/SriHarshaKodavati/openBill/handlers"
	"github.com/SriHarshaKodavati/openBill/logging"
	"github.com/SriHarshaKodavati/openBill/services"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := database.Connect(cfg); err != nil {
		return err
	}
	defer database.Close()

	// Redis is optional, the server runs without a cache
	database.ConnectRedis(cfg)

	if err := events.Connect(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer events.Default.Close()

	services.InitNotifications(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	services.RegisterMetrics(reg)

	srv := &http.Server{
		Addr:           "0.0.0.0:" + cfg.Port,
		Handler:        handlers.NewRouter(cfg, logger, reg),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("🚀 Server starting", "service", cfg.AppName, "addr", srv.Addr, "database", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
