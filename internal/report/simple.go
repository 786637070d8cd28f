package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/routelight/routelight/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: one block per route
// with per-category score/threshold lines and a run summary footer.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to
// files and other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables per-route URLs and timings in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	for i := range summary.Results {
		w.writeResult(&sb, &summary.Results[i])
	}
	w.writeFooter(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run header.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Routelight audit: %s\n", summary.BaseURL)
	fmt.Fprintf(sb, "Started: %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST"))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeResult writes one route's block.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.RouteResult) {
	marker := "PASS"
	if result.Failed() {
		marker = "FAIL"
	}
	fmt.Fprintf(sb, "\n[%s] %s (%s)\n", marker, result.DisplayTitle, result.RouteName)

	if w.verbose {
		fmt.Fprintf(sb, "      url: %s\n", result.ResolvedURL)
		fmt.Fprintf(sb, "      elapsed: %s\n", result.Elapsed.Round(time.Millisecond))
	}

	if result.Err != nil {
		fmt.Fprintf(sb, "      error: %s\n", result.ErrorMessage)
		return
	}

	outcome := result.Outcome
	for _, category := range model.SortedCategories(outcome.Scores) {
		relation := ">="
		for _, failed := range outcome.FailedCategories {
			if failed == category {
				relation = "< "
				break
			}
		}
		fmt.Fprintf(sb, "      %-15s %5.1f %s %d\n",
			category, outcome.ScorePercent(category), relation, outcome.EffectiveThresholds[category])
	}
}

// writeFooter writes the run summary footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Routes: %d  Passed: %d  Failed: %d  Elapsed: %s\n",
		len(summary.Results), summary.PassedCount(), summary.FailedCount(),
		summary.Elapsed.Round(time.Millisecond))
}
