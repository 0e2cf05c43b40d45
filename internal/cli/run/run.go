package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/convoy/internal/config"
	"github.com/aryankumar/convoy/internal/output"
	"github.com/aryankumar/convoy/internal/runner"
	"github.com/aryankumar/convoy/internal/scheduler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var noHeaders bool
	var wide bool

	cmd := &cobra.Command{
		Use:   "run <jobfile>",
		Short: "Run a batch of jobs from a jobfile",
		Long: `Run every job defined in a YAML jobfile, keeping a bounded number in
flight at once.

The --on-error policy controls what a failing job does to the rest of
the batch:

  abort     stop immediately and report the first failure
  drain     let in-flight jobs finish but start nothing new
  continue  run every job and report all failures at the end`,
		Example: `  # Run jobs with the default policy (drain)
  convoy run jobs.yaml

  # Stop at the first failure
  convoy run jobs.yaml --on-error abort

  # Run everything, 8 jobs at a time, and report all failures
  convoy run jobs.yaml --on-error continue -p 8

  # Machine-readable results
  convoy run jobs.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0], noHeaders, wide)
		},
	}

	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit table headers")
	cmd.Flags().BoolVarP(&wide, "wide", "w", false, "Show job output and errors in the table")

	return cmd
}

func runBatch(ctx context.Context, jobfilePath string, noHeaders, wide bool) error {
	logger := slog.Default()

	jf, err := config.LoadJobfile(jobfilePath)
	if err != nil {
		return err
	}

	parallel := viper.GetInt("parallel")
	if parallel < 1 {
		return fmt.Errorf("parallel must be positive, got %d", parallel)
	}

	policy, err := scheduler.ParsePolicy(viper.GetString("on-error"))
	if err != nil {
		return err
	}

	timeout := viper.GetDuration("timeout")

	logger.Debug("loaded jobfile",
		"path", jobfilePath,
		"jobs", len(jf.Jobs),
		"parallel", parallel,
		"on_error", policy,
		"timeout", timeout)

	r := runner.New(parallel, policy,
		runner.WithTimeout(timeout),
		runner.WithLogger(logger))

	results, runErr := r.Run(ctx, jf.Jobs)

	if err := printResults(results, noHeaders, wide); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("run failed: %w", runErr)
	}
	return nil
}

func printResults(results []runner.Result, noHeaders, wide bool) error {
	format := output.Format(viper.GetString("output"))
	if format == "" {
		format = output.FormatTable
	}

	formatter := output.NewFormatter(format,
		output.WithNoColor(viper.GetBool("no-color")),
		output.WithNoHeaders(noHeaders),
		output.WithWide(wide),
	)

	if err := formatter.FormatResults(os.Stdout, results); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	// Table output gets a trailing summary; structured formats stay clean
	// for scripting.
	if format == output.FormatTable {
		if err := formatter.FormatSummary(os.Stdout, runner.Summarize(results)); err != nil {
			return fmt.Errorf("failed to format summary: %w", err)
		}
	}

	return nil
}
