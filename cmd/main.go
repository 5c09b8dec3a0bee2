// jobly-api — REST API for companies and the jobs they post.
//
// Exposes CRUD plus filtered search:
//   - GET  /companies?minEmployees=&maxEmployees=&name=
//   - GET  /jobs?title=&minSalary=&hasEquity=
//   - admin-gated POST/PATCH/DELETE on both entities
//
// Backed by PostgreSQL; an optional Redis cache fronts the company detail
// read. A cron reporter logs table counts periodically.
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

	"jobly/api-service/internal/company"
	"jobly/api-service/internal/config"
	"jobly/api-service/internal/db"
	"jobly/api-service/internal/httpapi"
	"jobly/api-service/internal/job"
	"jobly/api-service/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[jobly-api] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[jobly-api] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[jobly-api] PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("[jobly-api] Migration: %v", err)
	}
	log.Println("[jobly-api] PostgreSQL ready ✓")

	// ── Repositories (Redis cache is optional) ───────────────────────────────
	var (
		companies  company.Repository = company.NewPostgresRepository(pool)
		jobs       job.Repository     = job.NewPostgresRepository(pool)
		invalidate httpapi.CompanyInvalidator
	)
	if cfg.RedisURL != "" {
		log.Println("[jobly-api] Connecting to Redis…")
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[jobly-api] Redis: %v", err)
		}
		defer rdb.Close()

		cached := company.NewCachedRepository(companies, rdb)
		companies = cached
		invalidate = cached
		log.Println("[jobly-api] Redis connected ✓")
	}

	// ── Stats reporter ───────────────────────────────────────────────────────
	reporter := stats.New(pool, cfg.StatsIntervalMinutes)
	if err := reporter.Start(ctx); err != nil {
		log.Fatalf("[jobly-api] Stats reporter: %v", err)
	}
	defer reporter.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	h := httpapi.NewHandler(companies, jobs, invalidate)
	router := httpapi.NewRouter(h, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[jobly-api] v%s listening on :%s", httpapi.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[jobly-api] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[jobly-api] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[jobly-api] Shutdown error: %v", err)
	}
	log.Println("[jobly-api] Stopped.")
}
