package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fn-peaks/src/analysis"
	"fn-peaks/src/config"
	"fn-peaks/src/helpers"
	"fn-peaks/src/logger"
	"fn-peaks/src/metrics"
	"fn-peaks/src/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// -----------------------------------------------------------------------------

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config (YAML or TOML)
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	loc := conf.Location()

	// 4. Setup Components
	db, err := setupDatabase(conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Run audit store unavailable: %v", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer := metrics.NewPromObserver(registry)

	channels := setupChannels(conf.MConfig, observer, appLogger)
	facade := analysis.NewPeakFacade(conf.MConfig, channels, observer, loc, logger.NewLogger(conf.MConfig, "PeakFacade"))
	srv := server.NewFastAPIServer(conf.MConfig, facade, db, registry, loc, logger.NewLogger(conf.MConfig, "Server"))

	// 5. Start Servers
	grpcServer := startServers(srv, facade, channels, conf.MConfig, loc, appLogger)

	// Lifecycle Management
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Refresh loop (blocking until shutdown)
	if conf.Refresh.Enabled {
		r := &refresher{
			Runner:    facade,
			Exchanger: srv,
			DB:        db,
			Errors:    helpers.NewErrorHandler(logger.NewLogger(conf.MConfig, "ErrorHandler")),
			Logger:    logger.NewLogger(conf.MConfig, "Refresh"),
			SpanDays:  conf.Refresh.SpanDays,
		}
		r.run(ctx, time.Duration(conf.Refresh.IntervalSeconds)*time.Second)
	} else {
		appLogger.Info("Serving on-demand queries only")
		<-ctx.Done()
	}

	// 7. Shutdown
	appLogger.Info("Shutting down...")
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := srv.Stop(); err != nil {
		appLogger.Error("Server shutdown: %v", err)
	}
	appLogger.Info("Shutdown complete.")
}
