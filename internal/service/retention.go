package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"webbuilder/internal/config"
	"webbuilder/internal/domain"
	applog "webbuilder/internal/log"
)

// ─────────────────────────────────────────────────────────────
// Retention: prunes the preview call log on a cron schedule
// ─────────────────────────────────────────────────────────────

type Retention struct {
	calls domain.APICallStore
	cfg   config.RetentionConfig
	cron  *cron.Cron
	now   func() time.Time
	log   *slog.Logger
	OnRun func(removed int64)
}

func NewRetention(calls domain.APICallStore, cfg config.RetentionConfig) *Retention {
	return &Retention{
		calls: calls,
		cfg:   cfg,
		now:   time.Now,
		log:   applog.WithComponent("retention"),
	}
}

// Start schedules the prune job. A non-positive max age disables it.
func (r *Retention) Start() error {
	if r.cfg.MaxAgeDays <= 0 {
		r.log.Info("retention disabled")
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(r.cfg.Schedule, func() {
		if _, err := r.PruneNow(); err != nil {
			r.log.Error("retention run failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("retention schedule %q: %w", r.cfg.Schedule, err)
	}
	c.Start()
	r.cron = c
	r.log.Info("retention scheduled", "schedule", r.cfg.Schedule, "max_age_days", r.cfg.MaxAgeDays)
	return nil
}

// PruneNow deletes calls older than the configured max age.
func (r *Retention) PruneNow() (int64, error) {
	cutoff := r.now().Add(-r.cfg.MaxAge())
	n, err := r.calls.DeleteAPICallsBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.log.Info("pruned api calls", "removed", n, "before", cutoff.Format(time.RFC3339))
	}
	if r.OnRun != nil {
		r.OnRun(n)
	}
	return n, nil
}

// Stop halts the scheduler and waits for a running prune to finish.
func (r *Retention) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.cron = nil
}
