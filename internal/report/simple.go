package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/assetsweep/assetsweep/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to
// files and other tools.
type SimpleWriter struct {
	baseWriter

	// maxListed caps the number of unused assets printed. Zero means
	// no cap; the JSON report always carries the full list.
	maxListed int

	// verbose additionally prints the full inventory and reference
	// lists.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMaxListed caps the number of unused assets printed.
func WithMaxListed(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.maxListed = n
	}
}

// WithVerbose enables printing of the inventory and reference lists.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// titleCaser renders category labels for section output.
var titleCaser = cases.Title(language.English)

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.DetectionReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeUnused(&sb, report)
	w.writeDuplicates(&sb, report)
	w.writeErrors(&sb, report)
	if w.verbose {
		w.writeList(&sb, "INVENTORY", report.Inventory)
		w.writeList(&sb, "REFERENCED", report.Referenced)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.DetectionReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       UNUSED ASSET REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Project:    %s\n", report.ProjectRoot)
	fmt.Fprintf(sb, "Asset root: %s\n", report.AssetRoot)
	fmt.Fprintf(sb, "Run date:   %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	sb.WriteString("\n")
}

// writeSummary writes the aggregate counts section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.DetectionReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	s := report.Summary
	fmt.Fprintf(sb, "  Assets on disk:  %d\n", s.TotalAssets)
	fmt.Fprintf(sb, "  Referenced:      %d\n", s.ReferencedCount)
	fmt.Fprintf(sb, "  Unused:          %d (%s)\n", s.UnusedCount, s.UnusedBytesHuman)
	if s.ErrorCount > 0 {
		fmt.Fprintf(sb, "  Errors:          %d (see below)\n", s.ErrorCount)
	}

	if len(s.UnusedByCategory) > 0 {
		sb.WriteString("\n  By category:\n")
		categories := make([]string, 0, len(s.UnusedByCategory))
		for c := range s.UnusedByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(sb, "    %-8s %d\n", titleCaser.String(c)+":", s.UnusedByCategory[c])
		}
	}
	sb.WriteString("\n")
}

// writeUnused writes the unused asset list, largest first.
func (w *SimpleWriter) writeUnused(sb *strings.Builder, report *model.DetectionReport) {
	if !report.HasUnused() {
		sb.WriteString("No unused assets found.\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nUNUSED ASSETS (largest first)\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	listed := report.Unused
	truncated := 0
	if w.maxListed > 0 && len(listed) > w.maxListed {
		truncated = len(listed) - w.maxListed
		listed = listed[:w.maxListed]
	}

	for _, asset := range listed {
		fmt.Fprintf(sb, "  %10s  %s\n", asset.SizeHuman, asset.Path)
	}
	if truncated > 0 {
		fmt.Fprintf(sb, "  ... and %d more (see the JSON report for the full list)\n", truncated)
	}
	sb.WriteString("\n")
}

// writeDuplicates writes the duplicate groups section when present.
func (w *SimpleWriter) writeDuplicates(sb *strings.Builder, report *model.DetectionReport) {
	if len(report.Duplicates) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nDUPLICATE CONTENT AMONG UNUSED ASSETS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, g := range report.Duplicates {
		fmt.Fprintf(sb, "  %d copies, %s wasted:\n", len(g.Paths), model.FormatBytes(g.WastedBytes))
		for _, p := range g.Paths {
			fmt.Fprintf(sb, "    %s\n", p)
		}
	}
	sb.WriteString("\n")
}

// writeErrors writes the non-fatal error list when present.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, report *model.DetectionReport) {
	if len(report.Errors) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nERRORS (non-fatal)\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, msg := range report.Errors {
		fmt.Fprintf(sb, "  * %s\n", msg)
	}
	sb.WriteString("\n")
}

// writeList writes a plain sorted path list section.
func (w *SimpleWriter) writeList(sb *strings.Builder, title string, paths []string) {
	sb.WriteString(strings.Repeat("-", 70))
	fmt.Fprintf(sb, "\n%s (%d)\n", title, len(paths))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, p := range paths {
		fmt.Fprintf(sb, "  %s\n", p)
	}
	sb.WriteString("\n")
}
