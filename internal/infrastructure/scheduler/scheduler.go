package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/metrics"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const scanJobName = "overdue-payment-scan"

// Config controls when the overdue-payment scan runs.
type Config struct {
	// Cron is a standard 5-field cron expression, e.g. "0 9 * * *".
	Cron string
	// RunOnStart triggers one scan right after Start.
	RunOnStart bool
	// Timeout bounds a single scan. Zero means no limit.
	Timeout  time.Duration
	Location *time.Location
}

// ReminderScheduler runs the daily reminder scan. Only one scan runs at a
// time; a tick that fires while a scan is still running is skipped.
type ReminderScheduler struct {
	scheduler gocron.Scheduler
	reminders ports.ReminderService
	cfg       Config
	log       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewReminderScheduler(reminders ports.ReminderService, cfg Config, log zerolog.Logger) (*ReminderScheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ReminderScheduler{
		scheduler: s,
		reminders: reminders,
		cfg:       cfg,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start registers the scan job and starts the scheduler.
func (r *ReminderScheduler) Start() error {
	opts := []gocron.JobOption{
		gocron.WithName(scanJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if r.cfg.RunOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := r.scheduler.NewJob(
		gocron.CronJob(r.cfg.Cron, false),
		gocron.NewTask(r.runScan),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("scheduler: add %s job: %w", scanJobName, err)
	}

	r.scheduler.Start()

	next, _ := job.NextRun()
	r.log.Info().Str("cron", r.cfg.Cron).Time("next_run", next).Msg("reminder scheduler started")
	return nil
}

// runScan never panics and never returns an error, so the next tick always runs.
func (r *ReminderScheduler) runScan() {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.ReminderScansTotal.WithLabelValues(metrics.TriggerScheduled, "panic").Inc()
			r.log.Error().Interface("panic", rec).Msg("reminder scan panicked")
		}
	}()

	ctx := r.ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	report, err := r.reminders.RunScan(ctx)
	metrics.ObserveScan(metrics.TriggerScheduled, report, err)
}

// Stop cancels a running scan and waits for the scheduler to shut down.
func (r *ReminderScheduler) Stop() error {
	r.log.Info().Msg("stopping reminder scheduler")
	r.cancel()
	return r.scheduler.Shutdown()
}
