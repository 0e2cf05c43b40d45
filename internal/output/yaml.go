package output

import (
	"io"

	"github.com/aryankumar/convoy/internal/runner"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// FormatResults outputs per-job results as YAML
func (f *YAMLFormatter) FormatResults(w io.Writer, results []runner.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(resultsToMaps(results))
}

// FormatSummary outputs the batch summary as YAML
func (f *YAMLFormatter) FormatSummary(w io.Writer, summary runner.Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(map[string]interface{}{
		"total":      summary.Total,
		"successful": summary.Successful,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
		"duration":   summary.TotalDuration.String(),
	})
}
