package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"tally/internal/amqp"
	"tally/internal/cli"
	tallyhttp "tally/internal/http"
	"tally/internal/idgen"
	"tally/internal/ledger"
	"tally/internal/mirror"
	"tally/internal/services"
	"tally/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	kv := cli.InitStorage(logger, cfg.SQLiteDBPath)
	defer kv.Close()

	ledgerStore := ledger.NewStore(kv)
	users := store.NewUserStore(idgen.UUID{})

	// Mirror selection: queue when AMQP is configured, direct HTTP when
	// only a base URL is given, otherwise no mirroring at all.
	var rec mirror.Recorder
	var amqpClient *amqp.Client
	switch {
	case cfg.AMQPURL != "":
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		rec = mirror.NewQueueMirror(amqpClient, mirror.LogFailures)
		logger.Info("Mirroring via AMQP queue", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	case cfg.MirrorBaseURL != "":
		remote := mirror.NewRemoteClient(cfg.MirrorBaseURL, cfg.MirrorTimeout)
		rec = mirror.NewHTTPMirror(remote, mirror.LogFailures)
		logger.Info("Mirroring via HTTP", "base_url", cfg.MirrorBaseURL)
	default:
		logger.Info("Mirroring disabled")
	}

	ledgerSvc := services.NewLedgerService(ledgerStore, rec, idgen.UUID{})

	srv := tallyhttp.NewServer(":"+cfg.Port, users, ledgerSvc, cfg.CacheSize, cfg.CacheTTL)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting tally server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
