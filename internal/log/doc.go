// Package log provides logging utilities for assetsweep.
//
// The main component is PathHandler, an slog.Handler wrapper that rewrites
// filesystem path attributes to be project-root-relative with forward
// slashes, so that log lines name assets exactly the way the detection
// report does.
package log
