package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/assetsweep/assetsweep/internal/model"
)

// ScriptWriter outputs a POSIX shell script that removes the unused
// assets listed in a report. The script is a portable alternative to
// running the removal directly: it can be reviewed, committed, or run
// on a different machine.
//
// Design decision: every path is single-quoted with embedded quotes
// escaped, so file names containing spaces or shell metacharacters
// cannot break out of the rm argument.
type ScriptWriter struct {
	baseWriter
}

// NewScriptWriter creates a ScriptWriter that outputs to the given
// writer.
func NewScriptWriter(output io.Writer) *ScriptWriter {
	return &ScriptWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the removal script for the report.
func (w *ScriptWriter) Write(report *model.DetectionReport) (int, error) {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Removes unused assets detected on ")
	b.WriteString(report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(".\n")
	fmt.Fprintf(&b, "# Run from the project root: %s\n", report.ProjectRoot)
	b.WriteString("set -eu\n")
	b.WriteString("\n")

	if !report.HasUnused() {
		b.WriteString("# No unused assets found. Nothing to do.\n")
		return io.WriteString(w.output, b.String())
	}

	fmt.Fprintf(&b, "# %d files, %s total\n", report.Summary.UnusedCount, report.Summary.UnusedBytesHuman)
	for _, asset := range report.Unused {
		fmt.Fprintf(&b, "rm -f %s\n", shellQuote(asset.Path))
	}

	return io.WriteString(w.output, b.String())
}

// shellQuote wraps s in single quotes, escaping any embedded single
// quotes so the result is safe as a single shell word.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
