// Package jobs runs the nightly maintenance tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/logging"
	"github.com/robfig/cron/v3"
)

const defaultTimeout = 10 * time.Minute

// Func does one unit of work and reports how many rows it touched.
type Func func(ctx context.Context) (int64, error)

// Recorder receives the outcome of every run.
type Recorder interface {
	JobRun(job string, d time.Duration, success bool)
}

type Runner struct {
	cron     *cron.Cron
	log      logging.Logger
	recorder Recorder
	timeout  time.Duration
	baseCtx  context.Context
	cancel   context.CancelFunc
}

// New builds a runner evaluating schedules in loc. recorder may be nil.
func New(loc *time.Location, log logging.Logger, recorder Recorder) *Runner {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logging.Nop{}
	}
	cl := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:      log,
		recorder: recorder,
		timeout:  defaultTimeout,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Add registers fn under a standard five-field cron spec.
func (r *Runner) Add(name, spec string, fn Func) error {
	if _, err := r.cron.AddFunc(spec, func() { _ = r.Run(name, fn) }); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	r.log.Info(r.baseCtx, "job scheduled", "job", name, "spec", spec)
	return nil
}

// Run executes fn once with a timeout, logging and recording the outcome.
func (r *Runner) Run(name string, fn Func) error {
	ctx, cancel := context.WithTimeout(r.baseCtx, r.timeout)
	defer cancel()

	start := time.Now()
	rows, err := fn(ctx)
	elapsed := time.Since(start)

	if r.recorder != nil {
		r.recorder.JobRun(name, elapsed, err == nil)
	}
	if err != nil {
		r.log.Error(ctx, "job failed", "job", name, "duration", elapsed, "error", err)
		return err
	}
	r.log.Info(ctx, "job finished", "job", name, "rows", rows, "duration", elapsed)
	return nil
}

func (r *Runner) Start() { r.cron.Start() }

// Stop halts scheduling, cancels running jobs if ctx expires first and waits
// for them to return.
func (r *Runner) Stop(ctx context.Context) {
	done := r.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		r.cancel()
		<-done
	}
	r.cancel()
}

func (r *Runner) Entries() int { return len(r.cron.Entries()) }

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(context.Background(), "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(context.Background(), "cron: "+msg, append(keysAndValues, "error", err)...)
}
