package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/routelight/routelight/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for CI job summaries and documentation.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation: type-safe tables, GitHub-flavored alerts, and
// mermaid chart support without hand-rolled string assembly.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeRouteTable(md, summary)
	w.writeFailures(md, summary)
	w.writePieChart(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Routelight Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Base URL", "`" + summary.BaseURL + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Routes", strconv.Itoa(len(summary.Results))},
			{"Passed", strconv.Itoa(summary.PassedCount())},
			{"Failed", strconv.Itoa(summary.FailedCount())},
		},
	})
	md.PlainText("")
}

// writeRouteTable writes the per-route score table.
func (w *MarkdownWriter) writeRouteTable(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Routes")
	md.PlainText("")

	header := []string{"Route", "Verdict", "Performance", "Accessibility", "Best Practices", "SEO"}
	rows := make([][]string, 0, len(summary.Results))

	for i := range summary.Results {
		result := &summary.Results[i]

		verdict := "✅ pass"
		if result.Failed() {
			verdict = "❌ fail"
		}

		row := []string{result.DisplayTitle, verdict}
		if result.Outcome != nil {
			for _, category := range model.Categories() {
				row = append(row, w.scoreCell(result.Outcome, category))
			}
		} else {
			row = append(row, "—", "—", "—", "—")
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// scoreCell renders one category's score against its threshold.
func (w *MarkdownWriter) scoreCell(outcome *model.AuditOutcome, category string) string {
	cell := fmt.Sprintf("%.0f / %d", outcome.ScorePercent(category), outcome.EffectiveThresholds[category])
	for _, failed := range outcome.FailedCategories {
		if failed == category {
			return "**" + cell + "**"
		}
	}
	return cell
}

// writeFailures writes a section detailing route-level errors, if any.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, summary *model.RunSummary) {
	var errored []*model.RouteResult
	for i := range summary.Results {
		if summary.Results[i].Err != nil {
			errored = append(errored, &summary.Results[i])
		}
	}
	if len(errored) == 0 {
		return
	}

	md.H2("Errors")
	md.PlainText("")
	items := make([]string, 0, len(errored))
	for _, result := range errored {
		items = append(items, fmt.Sprintf("`%s` (%s): %s", result.RouteName, result.ErrorKind, result.ErrorMessage))
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the pass/fail split.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.Results) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Route Verdicts"),
		piechart.WithShowData(true),
	)

	if passed := summary.PassedCount(); passed > 0 {
		chart.LabelAndIntValue("Passed", uint64(passed))
	}
	if failed := summary.FailedCount(); failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the run verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	if summary.AllPassed() {
		md.Tip("All routes cleared their thresholds.")
		return
	}
	md.Warningf("%d of %d route(s) failed.", summary.FailedCount(), len(summary.Results))
}
