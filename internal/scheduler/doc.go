// Package scheduler runs a fixed number of index-addressed tasks with
// bounded concurrency and a configurable failure policy.
//
// A run executes tasks for every index in [0, Count), keeping at most
// Concurrency of them in flight. Slots refill as tasks resolve, and the
// run produces exactly one terminal outcome.
//
// # Basic Usage
//
//	err := scheduler.Run(scheduler.Config{
//	    Concurrency: 4,
//	    Count:       len(items),
//	    Task: func(index int) error {
//	        return process(items[index])
//	    },
//	    OnError: scheduler.Drain,
//	})
//
// # Error Policies
//
// The OnError policy decides what a task failure does to the rest of
// the run:
//
//   - Abort: the first failure ends the run immediately and is returned
//     verbatim. Tasks already in flight keep running, but their outcomes
//     are discarded.
//   - Drain: no new tasks start after a failure; in-flight tasks finish,
//     and every collected failure is returned as an *AggregateError.
//   - Continue: every index runs to resolution; failures are collected
//     into an *AggregateError returned at the end.
//
// Callers distinguish the two failure shapes with errors.As:
//
//	var agg *scheduler.AggregateError
//	if errors.As(err, &agg) {
//	    // Drain or Continue: agg.Errors holds every failure.
//	} else if err != nil {
//	    // Abort: err is the failing task's error itself.
//	}
//
// # Guarantees
//
//   - At most Concurrency tasks are in flight at any instant.
//   - Each index is assigned exactly once, in increasing order.
//   - With Concurrency of 1, tasks run strictly one at a time in index
//     order.
//   - The terminal outcome is delivered exactly once, even when several
//     tasks resolve at the same time.
//   - Count of 0 succeeds immediately without invoking the task.
//
// # Limitations
//
// Launched tasks are never cancelled; "stopping" only ever means that no
// new tasks start. There are no retries, no timeouts, and no priorities.
// A Config produces one outcome and cannot be rerun.
package scheduler
