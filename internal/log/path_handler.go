package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// pathKeys contains attribute keys whose string values are treated as
// filesystem paths and rewritten relative to the project root.
var pathKeys = map[string]bool{
	"path":   true,
	"file":   true,
	"dir":    true,
	"root":   true,
	"asset":  true,
	"source": true,
	"output": true,
}

// PathHandler wraps an slog.Handler to rewrite path attributes.
// Absolute paths under the project root are logged relative to it with
// forward-slash separators, matching the asset path form used everywhere
// else in the tool. Paths outside the root pass through unchanged.
//
// Design decision: We use a handler wrapper rather than rewriting paths
// at every call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log whatever path form they hold without caring
//     about presentation
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten
	// records.
	handler slog.Handler

	// root is the absolute project root paths are made relative to.
	root string
}

// NewPathHandler creates a PathHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewPathHandler(handler slog.Handler, projectRoot string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PathHandler{handler: handler, root: projectRoot}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it on.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), root: h.root}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), root: h.root}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindString || !pathKeys[strings.ToLower(a.Key)] {
		return a
	}

	return slog.String(a.Key, h.rewrite(a.Value.String()))
}

// rewrite converts one path value to project-relative forward-slash form.
func (h *PathHandler) rewrite(path string) string {
	if h.root == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(h.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Outside the project root; keep the original form.
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// NewLogger creates a new slog.Logger for assetsweep runs.
// Output goes through a PathHandler so that all path attributes are
// reported project-relative.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - projectRoot: The absolute project root used for path rewriting
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, projectRoot string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewPathHandler(textHandler, projectRoot))
}
