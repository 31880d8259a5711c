package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playlist-manager/internal/app"
	"playlist-manager/internal/database"
	"playlist-manager/internal/handlers"
	"playlist-manager/internal/live"
	"playlist-manager/internal/logging"
	"playlist-manager/internal/metrics"
	"playlist-manager/internal/middleware"
	"playlist-manager/internal/oembed"
	"playlist-manager/internal/playlist"
	"playlist-manager/internal/startup"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 30 * time.Second
	statsInterval   = 15 * time.Second
)

func main() {
	startTime := time.Now()
	defer logging.Sync()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	startup.LogDatabaseInit(time.Since(dbStart))

	// Load playlists
	playlists, err := playlist.Open(context.Background(), db, playlist.Options{
		PersistDelay: config.PersistDelay,
	})
	if err != nil {
		startup.LogFatal("Failed to load playlists: %v", err)
	}
	startup.LogPlaylistsLoaded(playlists.Len(), playlists.Selected().Title())

	// Wire the application
	client := oembed.New(oembed.Config{
		Endpoint: config.OEmbedEndpoint,
		Timeout:  config.OEmbedTimeout,
		Workers:  config.EmbedWorkers,
	})
	hub := live.NewHub()
	application := app.New(app.Deps{
		Playlists: playlists,
		Validator: client,
		Embedder:  client,
		Surface:   hub,
	})
	hub.SetHandler(application)

	// Initialize metrics
	metrics.InitializeMetrics()
	collector := metrics.NewCollector(playlists, statsInterval)
	collector.Start()

	// Setup router
	h := handlers.New(application, hub, db)
	router := h.Router()
	router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(router)

	// Apply compression middleware
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(loggedHandler)

	// Create servers
	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error { return application.Run(appCtx) })
	g.Go(func() error { return serve(srv) })
	if metricsSrv != nil {
		g.Go(func() error { return serve(metricsSrv) })
	}

	// Start graceful shutdown handler
	g.Go(func() error {
		select {
		case sig := <-sigChan:
			startup.LogShutdownInitiated(sig.String())
		case <-gctx.Done():
			startup.LogShutdownInitiated("server error")
		}
		shutdown(srv, metricsSrv, hub, collector, stopApp, playlists, db)
		return nil
	})

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	if err := g.Wait(); err != nil {
		startup.LogFatal("Server error: %v", err)
	}
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func shutdown(srv, metricsSrv *http.Server, hub *live.Hub, collector *metrics.Collector,
	stopApp context.CancelFunc, playlists *playlist.Playlists, db *database.Database,
) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Disconnecting browsers")
	hub.Close()
	startup.LogShutdownStepComplete("Browsers disconnected")

	collector.Stop()
	stopApp()

	startup.LogShutdownStep("Saving playlists")
	if err := playlists.Flush(ctx); err != nil {
		logging.Error("Failed to save playlists: %v", err)
	} else {
		startup.LogShutdownStepComplete("Playlists saved")
	}

	startup.LogShutdownStep("Closing database")
	if err := db.Close(); err != nil {
		logging.Warn("Database close error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Database closed")
	}

	startup.LogShutdownComplete()
}
