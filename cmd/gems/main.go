package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/latoulicious/GEMS/internal/config"
	"github.com/latoulicious/GEMS/internal/scheduler"
	"github.com/latoulicious/GEMS/internal/version"
	"github.com/latoulicious/GEMS/pkg/dashboard"
	"github.com/latoulicious/GEMS/pkg/database"
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/repository"
	"github.com/latoulicious/GEMS/pkg/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Continue execution as .env file might not exist in production
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	factory, backing, cleanup, err := initializeBackingStore(cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	logging.SetGlobalLoggerFactory(factory)

	systemLogger := factory.CreateLogger("system")
	systemLogger.Info("Recognition core starting", map[string]interface{}{
		"version":  version.Get().Version,
		"data_dir": cfg.DataDir,
	})

	cache := repository.NewCache(cfg.CacheTTL.Std())
	cached := repository.NewCachedStore(backing, cache)

	heroes := repository.NewHeroRepository(cached, factory)
	missions := repository.NewMissionRepository(cached, factory)
	nominations := repository.NewNominationRepository(cached, cfg.AttachmentsDir, factory)
	service := dashboard.NewService(heroes, missions, nominations, factory)

	// Touch every table so first run creates the backing files up front
	for _, entity := range store.Entities() {
		if _, err := cached.Load(entity); err != nil {
			return fmt.Errorf("failed to initialize %s table: %w", entity, err)
		}
	}

	sched := scheduler.New(factory)
	if cfg.DatabaseURL == "" {
		if err := sched.AddJob(cfg.BackupSchedule, "backup", scheduler.BackupJob(cfg.DataDir, cfg.BackupDir, factory)); err != nil {
			return err
		}
	}
	if err := sched.AddJob("@every 1m", "cache-sweep", scheduler.SweepJob(cache, factory)); err != nil {
		return err
	}
	sched.Start()

	healthServer := startHealthServer(cfg.HealthAddr, service)

	systemLogger.Info("Recognition core running", map[string]interface{}{
		"health_addr": cfg.HealthAddr,
	})

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	systemLogger.Info("Shutting down gracefully", nil)
	sched.Stop()
	shutdownHealthServer(healthServer)
	systemLogger.Info("Shutdown complete", nil)
	return nil
}

// initializeBackingStore picks the shared SQL store when DATABASE_URL is set,
// otherwise the file-backed store; the SQL deployment also persists logs.
func initializeBackingStore(cfg *config.Config) (logging.LoggerFactory, store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		factory := logging.NewLoggerFactory(cfg.LogLevel)
		return factory, store.NewFileStore(cfg.DataDir, factory), nil, nil
	}

	db, err := database.NewGormDBFromConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	factory := logging.NewDatabaseLoggerFactory(cfg.LogLevel, &database.LogRepositoryAdapter{DB: db})
	sqlStore, err := database.NewSQLStore(db, factory)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return factory, sqlStore, cleanup, nil
}

// startHealthServer exposes /health and /status for deployment probes
func startHealthServer(addr string, service *dashboard.Service) *http.Server {
	startTime := time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := "healthy"
		code := http.StatusOK
		if _, err := service.Data(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"status": %q, "uptime": %q}`, status, time.Since(startTime).String())
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"application": "GEMS recognition core", "version": %q, "uptime": %q, "start_time": %q}`,
			version.Get().Version, time.Since(startTime).String(), startTime.Format(time.RFC3339))
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()

	return server
}

func shutdownHealthServer(server *http.Server) {
	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Health server shutdown error: %v", err)
	}
}
