// Package stats wires up the cron job that periodically logs table counts.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// Reporter wraps robfig/cron and logs companies/jobs row counts on a fixed
// interval. It exists so operators see data growth without a metrics stack.
type Reporter struct {
	cron *cron.Cron
	pool *pgxpool.Pool
	spec string // cron spec, e.g. "@every 60m"
}

// New creates a Reporter that fires every intervalMinutes minutes.
func New(pool *pgxpool.Pool, intervalMinutes int) *Reporter {
	return &Reporter{
		cron: cron.New(),
		pool: pool,
		spec: fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also reports once
// immediately so startup logs show the current state.
func (r *Reporter) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.report(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	slog.Info("stats reporter started", "spec", r.spec)

	go r.report(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (r *Reporter) Stop() {
	r.cron.Stop()
	slog.Info("stats reporter stopped")
}

func (r *Reporter) report(ctx context.Context) {
	var companies, jobs int
	err := r.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM companies), (SELECT count(*) FROM jobs)`,
	).Scan(&companies, &jobs)
	if err != nil {
		slog.Warn("stats query failed", "err", err)
		return
	}
	slog.Info("table stats", "companies", companies, "jobs", jobs)
}
