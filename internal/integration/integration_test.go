package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aryankumar/convoy/internal/config"
	"github.com/aryankumar/convoy/internal/output"
	"github.com/aryankumar/convoy/internal/runner"
	"github.com/aryankumar/convoy/internal/scheduler"
)

// TestFullWorkflow tests the complete workflow from jobfile loading to
// formatted output.
func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	jobfilePath := writeJobfile(t, `
jobs:
  - name: greet
    command: echo hello
  - name: pwd
    command: pwd
  - name: quiet
    command: "true"
`)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	jf, err := config.LoadJobfile(jobfilePath)
	if err != nil {
		t.Fatalf("failed to load jobfile: %v", err)
	}
	if len(jf.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jf.Jobs))
	}

	r := runner.New(2, scheduler.Drain,
		runner.WithTimeout(30*time.Second),
		runner.WithLogger(logger))

	results, err := r.Run(context.Background(), jf.Jobs)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	summary := runner.Summarize(results)
	if summary.Successful != 3 || summary.Failed != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// Results must come back in jobfile order.
	for i, res := range results {
		if res.Name != jf.Jobs[i].Name {
			t.Errorf("result %d is %q, expected %q", i, res.Name, jf.Jobs[i].Name)
		}
	}

	// Formatted output round-trips through JSON.
	var buf bytes.Buffer
	formatter := output.NewFormatter(output.FormatJSON)
	if err := formatter.FormatResults(&buf, results); err != nil {
		t.Fatalf("failed to format results: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("formatted output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("expected 3 formatted entries, got %d", len(decoded))
	}
}

// TestFullWorkflow_FailurePolicies exercises the three failure policies
// end to end with real shell jobs.
func TestFullWorkflow_FailurePolicies(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	jobfilePath := writeJobfile(t, `
jobs:
  - name: bad
    command: exit 1
  - name: ok-1
    command: "true"
  - name: ok-2
    command: "true"
`)

	jf, err := config.LoadJobfile(jobfilePath)
	if err != nil {
		t.Fatalf("failed to load jobfile: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	t.Run("abort", func(t *testing.T) {
		r := runner.New(1, scheduler.Abort, runner.WithLogger(logger))
		results, err := r.Run(context.Background(), jf.Jobs)

		var agg *scheduler.AggregateError
		if errors.As(err, &agg) {
			t.Error("abort must not return an aggregate")
		}
		if err == nil {
			t.Fatal("expected a failure")
		}
		if got := runner.CountSkipped(results); got != 2 {
			t.Errorf("expected 2 skipped jobs, got %d", got)
		}
	})

	t.Run("drain", func(t *testing.T) {
		r := runner.New(1, scheduler.Drain, runner.WithLogger(logger))
		results, err := r.Run(context.Background(), jf.Jobs)

		var agg *scheduler.AggregateError
		if !errors.As(err, &agg) {
			t.Fatalf("expected an aggregate error, got %v", err)
		}
		if got := runner.CountSkipped(results); got != 2 {
			t.Errorf("expected 2 skipped jobs, got %d", got)
		}
	})

	t.Run("continue", func(t *testing.T) {
		r := runner.New(1, scheduler.Continue, runner.WithLogger(logger))
		results, err := r.Run(context.Background(), jf.Jobs)

		var agg *scheduler.AggregateError
		if !errors.As(err, &agg) {
			t.Fatalf("expected an aggregate error, got %v", err)
		}
		if len(agg.Errors) != 1 {
			t.Errorf("expected 1 collected error, got %d", len(agg.Errors))
		}
		if got := runner.CountSuccessful(results); got != 2 {
			t.Errorf("expected 2 successful jobs, got %d", got)
		}
		if got := runner.CountSkipped(results); got != 0 {
			t.Errorf("expected no skipped jobs, got %d", got)
		}
	})
}

func writeJobfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write jobfile: %v", err)
	}
	return path
}
