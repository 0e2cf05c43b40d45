package runner

import (
	"fmt"
	"strings"
	"time"
)

// CountSuccessful returns the number of jobs that ran and succeeded.
func CountSuccessful(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Status == StatusOK {
			count++
		}
	}
	return count
}

// CountFailed returns the number of jobs that ran and failed.
func CountFailed(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			count++
		}
	}
	return count
}

// CountSkipped returns the number of jobs without an outcome.
func CountSkipped(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Status == StatusSkipped {
			count++
		}
	}
	return count
}

// FilterFailed returns only the failed results.
func FilterFailed(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Status == StatusFailed {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// HasErrors returns true if any job failed.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// TotalDuration sums the duration of every job that ran.
func TotalDuration(results []Result) time.Duration {
	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	return total
}

// Summary provides an overview of a batch run.
type Summary struct {
	Total         int
	Successful    int
	Failed        int
	Skipped       int
	TotalDuration time.Duration
}

// Summarize creates a summary of the results.
func Summarize(results []Result) Summary {
	return Summary{
		Total:         len(results),
		Successful:    CountSuccessful(results),
		Failed:        CountFailed(results),
		Skipped:       CountSkipped(results),
		TotalDuration: TotalDuration(results),
	}
}

// String returns a human-readable string representation of the summary.
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total: %d, ", s.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d, ", s.Successful))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	if s.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(", Skipped: %d", s.Skipped))
	}
	if s.Total > 0 {
		sb.WriteString(fmt.Sprintf(", Duration: %s", s.TotalDuration.Round(time.Millisecond)))
	}

	return sb.String()
}
