package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/convoy/internal/runner"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// FormatResults outputs per-job results as JSON
func (f *JSONFormatter) FormatResults(w io.Writer, results []runner.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resultsToMaps(results))
}

// FormatSummary outputs the batch summary as JSON
func (f *JSONFormatter) FormatSummary(w io.Writer, summary runner.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"total":      summary.Total,
		"successful": summary.Successful,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
		"duration":   summary.TotalDuration.String(),
	})
}

// resultsToMaps converts results to a marshalling-friendly structure
// shared by the JSON and YAML formatters. The Error field does not
// marshal as an error value, so it is flattened to its message.
func resultsToMaps(results []runner.Result) []map[string]interface{} {
	out := make([]map[string]interface{}, len(results))

	for i, result := range results {
		item := map[string]interface{}{
			"name":   result.Name,
			"status": string(result.Status),
		}

		if result.Status != runner.StatusSkipped {
			item["duration"] = result.Duration.String()
		}
		if result.Error != nil {
			item["error"] = result.Error.Error()
		}
		if result.Output != "" {
			item["output"] = result.Output
		}

		out[i] = item
	}

	return out
}
