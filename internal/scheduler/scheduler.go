package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
)

// Task is one unit of work, identified by its index in [0, Count).
// It is invoked at most once per index and may run concurrently with
// other tasks, so it must be safe to call from multiple goroutines.
type Task func(index int) error

// Config describes a single scheduler run. A Config produces exactly one
// terminal outcome and is then discarded; runs are not restartable.
type Config struct {
	// Concurrency is the maximum number of tasks in flight at once.
	// Must be positive.
	Concurrency int

	// Count is the total number of tasks to run. Zero means the run
	// succeeds immediately without invoking Task.
	Count int

	// Task is the work to perform for each index.
	Task Task

	// OnError selects how the run reacts to a task failure.
	OnError Policy

	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Count)
	}
	if c.Task == nil {
		return ErrNilTask
	}
	return nil
}

// run holds the mutable state of one scheduler run. Every field below mu
// is guarded by it; dispatch and resolve are the only mutation paths and
// each runs as a single critical section.
type run struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	launched  int     // indices assigned so far; next index to launch
	inFlight  int     // launched but not yet resolved
	succeeded int     // resolved successfully
	resolved  int     // finished for progress purposes (success, or failure under Continue)
	errs      []error // failures in resolution order
	draining  bool    // a failure under Drain stopped new launches
	ended     bool    // terminal outcome delivered

	done chan error
}

// Run executes cfg.Count tasks with at most cfg.Concurrency in flight,
// blocking until the run reaches its terminal outcome.
//
// The returned error is nil when every task succeeded, the first task's
// error verbatim under the Abort policy, or an *AggregateError under the
// Drain and Continue policies. Tasks are never cancelled once launched;
// under Abort, tasks still in flight when the run ends keep running and
// their outcomes are discarded.
func Run(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &run{
		cfg:    cfg,
		logger: logger,
		done:   make(chan error, 1),
	}

	r.logger.Debug("starting run",
		"count", cfg.Count,
		"concurrency", cfg.Concurrency,
		"on_error", cfg.OnError)

	r.mu.Lock()
	r.dispatch()
	r.mu.Unlock()

	return <-r.done
}

// dispatch launches tasks until every concurrency slot is filled, no
// indices remain, or the run is ending. It is invoked once at the start
// of the run and again after every resolution. Caller must hold mu.
func (r *run) dispatch() {
	for {
		if r.ended {
			return
		}
		if r.resolved >= r.cfg.Count {
			r.finish()
			return
		}
		if r.draining {
			r.finish()
			return
		}
		if r.launched+r.inFlight >= r.cfg.Count || r.inFlight >= r.cfg.Concurrency {
			return
		}

		index := r.launched
		r.launched++
		r.inFlight++

		r.logger.Debug("launching task", "index", index, "in_flight", r.inFlight)

		go r.execute(index)
	}
}

// execute runs one task and feeds its outcome back into the state machine.
func (r *run) execute(index int) {
	err := r.cfg.Task(index)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended {
		// The run already delivered its outcome (Abort). This task's
		// result is dropped, including a late failure.
		if err != nil {
			r.logger.Debug("discarding outcome of task that outlived the run",
				"index", index, "error", err)
		}
		return
	}

	r.inFlight--

	if err == nil {
		r.succeeded++
		r.resolved++
		r.logger.Debug("task succeeded", "index", index, "succeeded", r.succeeded)
		r.dispatch()
		return
	}

	r.errs = append(r.errs, err)
	r.logger.Warn("task failed",
		"index", index,
		"error", err,
		"policy", r.cfg.OnError)

	switch r.cfg.OnError {
	case Abort:
		// First failure ends the run with that error verbatim. Tasks
		// still in flight keep running; their outcomes are discarded.
		r.ended = true
		r.done <- err

	case Drain:
		r.draining = true
		r.finish()

	case Continue:
		// A failure still counts toward exhaustion so the remaining
		// indices keep launching and the run can terminate.
		r.resolved++
		r.dispatch()
	}
}

// finish delivers the terminal outcome if the run is complete: either
// every task has resolved, or the run is draining and the last in-flight
// task has finished. Caller must hold mu. The ended flag guarantees the
// outcome is delivered exactly once.
func (r *run) finish() {
	if r.ended {
		return
	}
	if r.resolved < r.cfg.Count && !(r.draining && r.inFlight == 0) {
		return
	}

	r.ended = true

	if len(r.errs) > 0 {
		agg := &AggregateError{Errors: r.errs}
		r.logger.Info("run finished with failures",
			"count", r.cfg.Count,
			"succeeded", r.succeeded,
			"failed", len(r.errs))
		r.done <- agg
		return
	}

	r.logger.Debug("run finished", "count", r.cfg.Count, "succeeded", r.succeeded)
	r.done <- nil
}
