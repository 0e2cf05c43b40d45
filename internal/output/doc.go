// Package output provides formatters for displaying convoy run results.
//
// The package supports table (kubectl-style), JSON and YAML formats
// behind one Formatter interface, with TTY-aware color support.
//
// # Basic Usage
//
//	formatter := output.NewFormatter(output.FormatTable,
//	    output.WithNoColor(noColor),
//	    output.WithWide(wide),
//	)
//
//	formatter.FormatResults(os.Stdout, results)
//	formatter.FormatSummary(os.Stdout, runner.Summarize(results))
//
// # Color Support
//
// Colors are enabled only for TTY outputs and can be disabled with
// WithNoColor. Scheme: job names cyan, ok green, failed red, skipped
// yellow, durations blue.
package output
