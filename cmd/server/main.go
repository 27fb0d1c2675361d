// Package main wires the consent ledger server: configuration, logging,
// the event log backend, the transition service, the read-model refresher,
// and the HTTP surface. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/handler"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/metrics"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/service"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/store"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/config"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/kafka"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/logger"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/token"
	"github.com/fourtytwo42/healthChains-sub004/internal/readmodel"
	httptransport "github.com/fourtytwo42/healthChains-sub004/internal/transport/http"
)

func main() {
	configPath := pflag.String("config", "", "path to the YAML configuration file")
	addr := pflag.String("addr", "", "listen address, overrides config")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log := logger.New(cfg.LogLevel)
	log.Info("initializing consent ledger",
		"addr", cfg.Addr,
		"event_log_path", cfg.EventLogPath,
		"kafka_enabled", cfg.KafkaBrokers != "",
		"max_batch_size", cfg.MaxBatchSize,
	)

	// Event log: durable SQLite when a path is configured, memory otherwise.
	var eventLog eventlog.Log
	if cfg.EventLogPath != "" {
		sqliteLog, err := eventlog.NewSQLiteLog(cfg.EventLogPath)
		if err != nil {
			log.Error("failed to open event log", "error", err, "path", cfg.EventLogPath)
			os.Exit(1)
		}
		defer sqliteLog.Close()
		eventLog = sqliteLog
	} else {
		log.Warn("using in-memory event log; events will not survive restarts")
		eventLog = eventlog.NewInMemoryLog()
	}

	m := metrics.New()

	opts := []service.Option{
		service.WithLimits(cfg.Limits()),
		service.WithMetrics(m),
	}

	// Kafka fan-out is optional; the ledger's correctness never depends on it.
	if cfg.KafkaBrokers != "" {
		producerCfg := kafka.DefaultConfig()
		producerCfg.Brokers = cfg.KafkaBrokers
		producer, err := kafka.NewProducer(producerCfg, log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		opts = append(opts, service.WithPublisher(eventlog.NewPublisher(producer, cfg.KafkaTopic, log)))
	}

	ledger := service.NewService(store.New(), eventLog, log, opts...)
	refresher := readmodel.NewRefresher(eventLog, cfg.RebuildInterval, log, m)

	tokens := token.NewService(cfg.JWTSigningKey, cfg.TokenIssuer, cfg.TokenTTL)
	router := httptransport.NewRouter(handler.New(ledger, refresher, log), tokens, log, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
