package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-scan/internal/cache"
	"media-scan/internal/database"
	"media-scan/internal/handlers"
	"media-scan/internal/logging"
	"media-scan/internal/metrics"
	"media-scan/internal/middleware"
	"media-scan/internal/scanner"
	"media-scan/internal/signing"
	"media-scan/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Load the signing key before anything else: an unparsable key means
	// every issued token would be garbage, so refuse to start.
	signer, err := signing.LoadKeyFile(config.SigningKeyFile)
	if err != nil {
		startup.LogFatal("Signing key error: %v", err)
	}
	startup.LogSigningInit()

	// Initialize event store
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn("failed to close database: %v", err)
		}
	}()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Clean up expired sessions periodically
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.CleanExpiredSessions(); err != nil {
				logging.Warn("session cleanup failed: %v", err)
			}
		}
	}()

	// Load the timing cache
	timingCache, err := cache.Load(config.TimingCachePath)
	if err != nil {
		startup.LogFatal("Failed to load timing cache: %v", err)
	}

	// Initialize the scan engine
	startup.LogScannerInit(config.ScanInterval, len(config.Locations))
	engine := scanner.New(db, timingCache, config.Locations, config.ScanInterval, config.FullReloadInterval)
	engine.SetParallel(config.ScanParallel)
	engine.Start()
	startup.LogScannerStarted()

	// Initialize handlers
	h := handlers.New(db, engine, signer)

	// Setup router
	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply authentication middleware
	authedRouter := h.AuthMiddleware(router)

	// Apply metrics and logging middleware
	handler := http.Handler(authedRouter)
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
		go serveMetrics(config.MetricsPort)
	}
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, engine)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Signed paths are absolute, so file URLs contain a double slash that
	// path cleaning would otherwise collapse into a redirect.
	r.SkipClean(true)

	// Health check and version routes (no auth required)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/setup-required", h.CheckSetupRequired).Methods("GET")
	auth.HandleFunc("/setup", h.Setup).Methods("POST")
	auth.HandleFunc("/login", h.Login).Methods("POST")
	auth.HandleFunc("/logout", h.Logout).Methods("POST")
	auth.HandleFunc("/check", h.CheckAuth).Methods("GET")

	// Signed file serving: the token in the URL is the access control
	r.HandleFunc("/file/{path:.*}/{signature}", h.GetFile).Methods("GET")

	// Session-protected routes
	r.HandleFunc("/status", h.GetStatus).Methods("GET")
	r.HandleFunc("/events", h.GetEvents).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scan/status", h.GetScanStatus).Methods("GET")

	return r
}

func serveMetrics(port string) {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logging.Info("Metrics server listening on :%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Error("Metrics server error: %v", err)
	}
}

func handleShutdown(srv *http.Server, engine *scanner.Engine) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping scan engine")
	engine.Stop()
	startup.LogShutdownStepComplete("Scan engine stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
