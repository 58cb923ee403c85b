package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/employee"
	"hrms/internal/platform/blob"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/jobs"
	contacthandler "hrms/internal/transport/http/handlers/contact"
	directoryhandler "hrms/internal/transport/http/handlers/directory"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	profilehandler "hrms/internal/transport/http/handlers/profile"
	"hrms/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	store := employee.NewStore(pool)
	blobs := blob.NewFileStore(cfg.BlobDir, cfg.BlobBucket, cfg.BlobBaseURL)
	service := employee.NewService(store, blobs, cfg.JWTSecret, cfg.TokenTTL, cfg.DefaultBranch)

	reconciler := jobs.New(store, cfg.ReconcileInterval, cfg.DefaultBranch)
	reconciler.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		employeehandler.NewHandler(service).RegisterRoutes(r)
		contacthandler.NewHandler(service).RegisterRoutes(r)
		directoryhandler.NewHandler(service).RegisterRoutes(r)
		profilehandler.NewHandler(service).RegisterRoutes(r)
	})

	log.Printf("HRMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
