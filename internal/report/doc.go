// Package report provides report output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//   - ScriptWriter: A shell cleanup script mirroring the unused list
//
// Design decision: We separate report writing from the report data
// structures (which live in the model package) so new output formats
// can be added without touching the core types. Writers implement the
// Writer interface and can be composed with MultiWriter.
package report
