package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/aryankumar/convoy/internal/scheduler"
	"github.com/aryankumar/convoy/internal/util"
)

// Job is one shell command to execute as part of a batch.
type Job struct {
	// Name identifies the job in results and logs. Must be unique
	// within a batch.
	Name string `yaml:"name" json:"name"`

	// Command is the shell command to run (passed to sh -c).
	Command string `yaml:"command" json:"command"`

	// Env holds extra environment variables for the command.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// Dir is the working directory for the command. Empty means the
	// current directory.
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// Status describes how a job ended.
type Status string

const (
	// StatusOK means the job ran and exited successfully.
	StatusOK Status = "ok"

	// StatusFailed means the job ran and exited with an error.
	StatusFailed Status = "failed"

	// StatusSkipped means the job produced no outcome for the batch:
	// either it was never launched because the run ended first (abort
	// or drain policy), or it was still running when an abort ended the
	// run and its outcome was discarded.
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one job.
type Result struct {
	// Name is the job's name.
	Name string `yaml:"name" json:"name"`

	// Status is how the job ended.
	Status Status `yaml:"status" json:"status"`

	// Output is the job's combined stdout and stderr.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// Error is the failure, nil for ok and skipped jobs.
	Error error `yaml:"-" json:"-"`

	// Duration is how long the job ran.
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Runner executes batches of jobs through the bounded task scheduler.
type Runner struct {
	parallel int
	policy   scheduler.Policy
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets a per-job timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger for the runner and its scheduler runs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner that keeps at most parallel jobs in flight and
// reacts to failures according to policy.
func New(parallel int, policy scheduler.Policy, opts ...Option) *Runner {
	r := &Runner{
		parallel: parallel,
		policy:   policy,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every job in the batch and returns one Result per job, in
// batch order, together with the run's terminal outcome: nil when every
// job succeeded, the failing job's error under the abort policy, or an
// *scheduler.AggregateError under drain and continue.
//
// Jobs the run ended before launching are returned with StatusSkipped.
// The context is bound into each job's command so signals reach the
// child processes; the run itself is not cancellable.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	r.logger.Info("starting batch",
		"jobs", len(jobs),
		"parallel", r.parallel,
		"on_error", r.policy)

	start := time.Now()

	// Jobs that outlive an aborted run resolve after scheduler.Run has
	// returned; the finished gate keeps them from writing into results
	// the caller is already reading.
	var mu sync.Mutex
	finished := false

	err := scheduler.Run(scheduler.Config{
		Concurrency: r.parallel,
		Count:       len(jobs),
		OnError:     r.policy,
		Logger:      r.logger,
		Task: func(index int) error {
			res := r.execute(ctx, jobs[index])
			mu.Lock()
			if !finished {
				results[index] = res
			}
			mu.Unlock()
			return res.Error
		},
	})

	// Jobs without an outcome keep their zero-value result; mark them
	// as skipped so output distinguishes them from failures.
	mu.Lock()
	finished = true
	for i := range results {
		if results[i].Status == "" {
			results[i] = Result{Name: jobs[i].Name, Status: StatusSkipped}
		}
	}
	mu.Unlock()

	r.logger.Info("batch finished",
		"jobs", len(jobs),
		"succeeded", CountSuccessful(results),
		"failed", CountFailed(results),
		"skipped", CountSkipped(results),
		"duration", time.Since(start))

	return results, err
}

// execute runs a single job and builds its result.
func (r *Runner) execute(ctx context.Context, job Job) Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Debug("executing job", "job", job.Name, "command", job.Command)
	start := time.Now()

	cmd := exec.CommandContext(ctx, "sh", "-c", job.Command)
	cmd.Dir = job.Dir
	cmd.Env = os.Environ()
	for k, v := range job.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	out, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		// A killed command surfaces as a bare exit error; classify it
		// against the context so callers can tell a timeout or a Ctrl-C
		// from a genuine job failure.
		switch ctx.Err() {
		case context.DeadlineExceeded:
			err = fmt.Errorf("%w after %s: %v", util.ErrTimeout, r.timeout, err)
		case context.Canceled:
			err = fmt.Errorf("%w: %v", util.ErrCancelled, err)
		}

		r.logger.Warn("job failed",
			"job", job.Name,
			"error", err,
			"duration", duration)
		return Result{
			Name:     job.Name,
			Status:   StatusFailed,
			Output:   string(out),
			Error:    util.WrapJobError(job.Name, err),
			Duration: duration,
		}
	}

	r.logger.Debug("job succeeded", "job", job.Name, "duration", duration)
	return Result{
		Name:     job.Name,
		Status:   StatusOK,
		Output:   string(out),
		Duration: duration,
	}
}
