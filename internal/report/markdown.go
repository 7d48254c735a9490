package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/assetsweep/assetsweep/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing cleanup results in pull requests
// and documentation.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation: type-safe tables and lists, GitHub-flavored
// alerts, and mermaid chart support.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.DetectionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeUnused(md, report)
	w.writeDuplicates(md, report)
	w.writeErrors(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.DetectionReport) {
	md.H1("Unused Asset Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Project", "`" + report.ProjectRoot + "`"},
			{"Asset root", "`" + report.AssetRoot + "`"},
			{"Run date", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

// writeSummary writes the aggregate counts section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.DetectionReport) {
	md.H2("Summary")
	md.PlainText("")

	s := report.Summary
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Assets on disk", strconv.Itoa(s.TotalAssets)},
			{"Referenced", strconv.Itoa(s.ReferencedCount)},
			{"Unused", strconv.Itoa(s.UnusedCount)},
			{"Unused size", s.UnusedBytesHuman},
			{"Errors", strconv.Itoa(s.ErrorCount)},
		},
	})
	md.PlainText("")

	if len(s.UnusedByCategory) > 0 {
		w.writeCategoryChart(md, s)
	}

	switch {
	case s.UnusedCount == 0:
		md.Tip("No unused assets detected.")
	case s.ErrorCount > 0:
		md.Warningf("%d unused assets (%s) detected; %d non-fatal errors occurred during the run.",
			s.UnusedCount, s.UnusedBytesHuman, s.ErrorCount)
	default:
		md.Importantf("%d unused assets (%s) can be removed.", s.UnusedCount, s.UnusedBytesHuman)
	}
	md.PlainText("")
}

// writeCategoryChart writes a mermaid pie chart of unused categories.
func (w *MarkdownWriter) writeCategoryChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Unused Assets by Category"),
		piechart.WithShowData(true),
	)

	categories := make([]string, 0, len(s.UnusedByCategory))
	for category := range s.UnusedByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		chart.LabelAndIntValue(category, uint64(s.UnusedByCategory[category]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeUnused writes the unused asset table, largest first.
func (w *MarkdownWriter) writeUnused(md *markdown.Markdown, report *model.DetectionReport) {
	md.H2("Unused Assets")
	md.PlainText("")

	if !report.HasUnused() {
		md.PlainText("No unused assets found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Unused))
	for _, asset := range report.Unused {
		rows = append(rows, []string{"`" + asset.Path + "`", asset.SizeHuman})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Size"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDuplicates writes the duplicate groups section when present.
func (w *MarkdownWriter) writeDuplicates(md *markdown.Markdown, report *model.DetectionReport) {
	if len(report.Duplicates) == 0 {
		return
	}

	md.H2("Duplicate Content Among Unused Assets")
	md.PlainText("")

	for _, g := range report.Duplicates {
		md.PlainTextf("**%d copies, %s wasted**", len(g.Paths), model.FormatBytes(g.WastedBytes))
		md.PlainText("")
		md.BulletList(g.Paths...)
		md.PlainText("")
	}
}

// writeErrors writes the non-fatal error list when present.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, report *model.DetectionReport) {
	if len(report.Errors) == 0 {
		return
	}

	md.H2("Errors (non-fatal)")
	md.PlainText("")
	md.BulletList(report.Errors...)
	md.PlainText("")
}
