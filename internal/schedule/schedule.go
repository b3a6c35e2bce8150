// Package schedule runs the periodic check job from a cron expression.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job fires a function on a cron schedule. It never overlaps runs: if a run
// is still going when the next slot arrives, that slot is skipped.
type Job struct {
	expr  string
	sched cron.Schedule
	run   func(context.Context)

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// Parse parses a standard five-field cron expression.
func Parse(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(expr)
}

// New creates a job. The expression is validated up front so a bad config
// fails at startup, not at the first misfire.
func New(expr string, run func(context.Context)) (*Job, error) {
	sched, err := Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return &Job{expr: expr, sched: sched, run: run}, nil
}

// Next returns the next scheduled run time after now.
func (j *Job) Next() time.Time {
	return j.sched.Next(time.Now())
}

// Expr returns the cron expression the job was built from.
func (j *Job) Expr() string { return j.expr }

// Start runs the job loop until ctx is cancelled.
func (j *Job) Start(ctx context.Context) {
	go j.loop(ctx)
}

func (j *Job) loop(ctx context.Context) {
	for {
		next := j.sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			j.fire(ctx)
		}
	}
}

func (j *Job) fire(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.run(ctx)

	j.mu.Lock()
	j.running = false
	j.lastRun = time.Now()
	j.mu.Unlock()
}

// LastRun returns when the job last completed, zero if it never ran.
func (j *Job) LastRun() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastRun
}
