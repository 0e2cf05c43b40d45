package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/aryankumar/convoy/internal/runner"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a borderless, tab-separated table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// FormatResults outputs per-job results as a table
func (f *TableFormatter) FormatResults(w io.Writer, results []runner.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	headers := []string{"JOB", "STATUS", "DURATION"}
	if f.options.Wide {
		headers = append(headers, "DETAIL")
	}

	if !f.options.NoHeaders {
		if colors.Disabled {
			table.SetHeader(headers)
		} else {
			coloredHeaders := make([]string, len(headers))
			for i, h := range headers {
				coloredHeaders[i] = colors.Header(h)
			}
			table.SetHeader(coloredHeaders)
		}
	}

	for _, result := range results {
		table.Append(f.formatResultRow(result, colors))
	}

	table.Render()
	return nil
}

// FormatSummary outputs the batch summary line
func (f *TableFormatter) FormatSummary(w io.Writer, summary runner.Summary) error {
	colors := NewColorScheme(w, f.options.NoColor)

	line := summary.String()
	if !colors.Disabled && summary.Failed > 0 {
		line = colors.Error(line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	return nil
}

// formatResultRow formats a single result as a table row
func (f *TableFormatter) formatResultRow(result runner.Result, colors *ColorScheme) []string {
	name := result.Name
	if !colors.Disabled {
		name = colors.JobName(name)
	}

	status := strings.ToUpper(string(result.Status))
	if !colors.Disabled {
		status = colors.StatusColor(result.Status)(status)
	}

	duration := result.Duration.String()
	if result.Status == runner.StatusSkipped {
		duration = "-"
	}
	if !colors.Disabled {
		duration = colors.Duration(duration)
	}

	row := []string{name, status, duration}

	if f.options.Wide {
		detail := ""
		if result.Error != nil {
			detail = result.Error.Error()
		} else if result.Output != "" {
			detail = strings.TrimSpace(result.Output)
			if len(detail) > 50 {
				detail = detail[:47] + "..."
			}
		}
		row = append(row, detail)
	}

	return row
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}
