package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aryankumar/convoy/internal/runner"
)

func testResults() []runner.Result {
	return []runner.Result{
		{Name: "build", Status: runner.StatusOK, Output: "ok\n", Duration: 120 * time.Millisecond},
		{Name: "lint", Status: runner.StatusFailed, Error: errors.New("exit status 1"), Duration: 80 * time.Millisecond},
		{Name: "deploy", Status: runner.StatusSkipped},
	}
}

func TestTableFormatter_FormatResults(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true})

	if err := f.FormatResults(&buf, testResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"JOB", "STATUS", "DURATION", "build", "OK", "lint", "FAILED", "deploy", "SKIPPED"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true, NoHeaders: true})

	if err := f.FormatResults(&buf, testResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(buf.String(), "STATUS") {
		t.Errorf("expected no headers, got:\n%s", buf.String())
	}
}

func TestTableFormatter_Wide(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true, Wide: true})

	if err := f.FormatResults(&buf, testResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "DETAIL") {
		t.Errorf("expected wide output to have a DETAIL column, got:\n%s", out)
	}
	if !strings.Contains(out, "exit status 1") {
		t.Errorf("expected wide output to contain the error, got:\n%s", out)
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true})

	if err := f.FormatResults(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("expected a no-results message, got %q", buf.String())
	}
}

func TestTableFormatter_FormatSummary(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true})

	summary := runner.Summarize(testResults())
	if err := f.FormatSummary(&buf, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Total: 3", "Successful: 1", "Failed: 1", "Skipped: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected summary to contain %q, got %q", want, out)
		}
	}
}
