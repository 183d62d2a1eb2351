package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/audit"
	"github.com/BruksfildServices01/barberpro-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barberpro-booking/internal/db"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barberpro-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barberpro-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barberpro-booking/internal/logger"
	"github.com/BruksfildServices01/barberpro-booking/internal/media"
	"github.com/BruksfildServices01/barberpro-booking/internal/routes"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
	"github.com/BruksfildServices01/barberpro-booking/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Log)

	if err := validators.Register(); err != nil {
		log.Error("failed to register validators", "err", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	deps := routes.Deps{
		Config: cfg,
		Log:    log,
		Clock:  timezone.SystemClock,
		Cache:  domain.NopCache{},
	}

	// ======================================================
	// STORE
	// ======================================================
	var sink audit.Sink

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		deps.Appointments = store
		deps.Catalog = store
		deps.Accounts = store
		sink = store
		log.Warn("using in-memory store, data is lost on restart")

	case config.StoreDriverPostgres:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			log.Error("failed to open database", "err", err)
			os.Exit(1)
		}
		deps.Appointments = infraRepo.NewAppointmentGormRepository(db)
		deps.Catalog = infraRepo.NewCatalogGormRepository(db)
		deps.Accounts = infraRepo.NewAccountGormRepository(db)
		sink = audit.New(db)

	default:
		log.Error("unknown STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	deps.Audit = audit.NewDispatcher(sink, log)
	defer deps.Audit.Close()

	// ======================================================
	// CACHE
	// ======================================================
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, availability cache disabled", "err", err)
		} else {
			defer rdb.Close()
			deps.Cache = cache.NewAvailabilityRedis(rdb, cfg.AvailabilityCacheTTL, log)
		}
	}

	// ======================================================
	// MEDIA
	// ======================================================
	if cfg.S3.Enabled() {
		deps.Uploader = media.NewUploader(media.NewS3Storage(cfg.S3))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
	log.Info("server stopped")
}
