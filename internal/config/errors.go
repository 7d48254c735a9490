package config

import "errors"

// Configuration validation errors.
// These are package-level sentinel errors so callers can use errors.Is()
// for programmatic handling while still getting a readable message.
var (
	// ErrNoProjectRoot is returned when no project root is configured.
	ErrNoProjectRoot = errors.New("no project root specified")

	// ErrNoAssetDir is returned when the asset directory is empty.
	ErrNoAssetDir = errors.New("no asset directory specified")

	// ErrAbsoluteAssetDir is returned when the asset directory is an
	// absolute path. It must be relative to the project root so that
	// report paths stay portable.
	ErrAbsoluteAssetDir = errors.New("asset directory must be relative to the project root")

	// ErrInvalidConcurrency is returned when the reference scanner
	// concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid scan concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
