// Package runner executes batches of named shell jobs through the
// bounded task scheduler.
//
// A batch is an ordered list of jobs; each job runs as "sh -c command"
// with optional extra environment and working directory. The runner
// keeps at most a configured number of jobs in flight and reacts to
// failures with the scheduler's abort, drain or continue policy.
//
// # Basic Usage
//
//	r := runner.New(4, scheduler.Drain, runner.WithTimeout(time.Minute))
//	results, err := r.Run(ctx, jobs)
//
// Every job gets a Result in batch order, including jobs the run ended
// before launching (StatusSkipped). The error mirrors the scheduler's
// terminal outcome, so callers can distinguish a single failure (abort)
// from an aggregate (drain, continue) with errors.As.
//
// # Result Analysis
//
//	summary := runner.Summarize(results)
//	failed := runner.FilterFailed(results)
//	if runner.HasErrors(results) {
//	    ...
//	}
package runner
