package model

import (
	"time"
)

// DetectionReport is the result of one detection run.
// It is built up by the pipeline steps and treated as immutable once the
// summary step has run; writers and the history database only read it.
//
// Design decision: the report doubles as the per-run context object that
// is threaded through the pipeline stages. One instance is created per
// invocation and discarded afterward, so there is no shared mutable
// state between runs.
type DetectionReport struct {
	// ProjectRoot is the absolute project root the run was anchored at.
	ProjectRoot string `json:"project_root"`

	// AssetRoot is the scanned asset directory, relative to ProjectRoot.
	AssetRoot string `json:"asset_root"`

	// GeneratedAt is the timestamp when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// Summary holds the aggregate counts and byte totals.
	Summary Summary `json:"summary"`

	// Inventory is every recognized asset found under AssetRoot,
	// sorted lexicographically for reproducible diffing across runs.
	Inventory []string `json:"inventory"`

	// Referenced is the reference set as supplied by the reference
	// scanner, sorted lexicographically. It may contain entries absent
	// from Inventory (stale references); those are ignored by the diff
	// but still listed here.
	Referenced []string `json:"referenced"`

	// Unused lists the assets in Inventory but not in Referenced,
	// sorted by size descending. Equal sizes keep lexicographic path
	// order because the sizing pass iterates sorted paths and the sort
	// is stable.
	Unused []UnusedAsset `json:"unused"`

	// Duplicates groups unused assets with identical content, largest
	// groups first. Populated only when duplicate detection is enabled.
	Duplicates []DuplicateGroup `json:"duplicates,omitempty"`

	// Errors is the ordered list of non-fatal error messages collected
	// during the run (unreadable subdirectories, failed stats).
	Errors []string `json:"errors,omitempty"`
}

// Summary holds the aggregate figures of a detection run.
type Summary struct {
	// TotalAssets is the number of assets in the inventory.
	TotalAssets int `json:"total_assets"`

	// ReferencedCount is the size of the supplied reference set.
	ReferencedCount int `json:"referenced_count"`

	// UnusedCount is the number of unused assets.
	UnusedCount int `json:"unused_count"`

	// UnusedBytes is the total size of all unused assets, using 0 for
	// assets whose stat failed. Computed over the unused subset only.
	UnusedBytes int64 `json:"unused_bytes"`

	// UnusedBytesHuman is the human-readable rendering of UnusedBytes.
	UnusedBytesHuman string `json:"unused_bytes_human"`

	// UnusedByCategory counts unused assets per category
	// (image, font, audio, video).
	UnusedByCategory map[string]int `json:"unused_by_category,omitempty"`

	// ErrorCount is the number of non-fatal errors collected.
	ErrorCount int `json:"error_count"`
}

// DuplicateGroup is a set of unused assets with identical content.
type DuplicateGroup struct {
	// Hash is the hex-encoded BLAKE2b-256 digest of the content.
	Hash string `json:"hash"`

	// Paths are the normalized paths sharing the content, sorted.
	Paths []string `json:"paths"`

	// SizeBytes is the size of one copy.
	SizeBytes int64 `json:"size_bytes"`

	// WastedBytes is SizeBytes times the number of extra copies.
	WastedBytes int64 `json:"wasted_bytes"`
}

// NewDetectionReport creates an empty report for a run anchored at the
// given project root and asset root.
func NewDetectionReport(projectRoot, assetRoot string) *DetectionReport {
	return &DetectionReport{
		ProjectRoot: projectRoot,
		AssetRoot:   assetRoot,
		GeneratedAt: time.Now().UTC(),
	}
}

// AddError appends a non-fatal error message to the report.
func (r *DetectionReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// HasUnused reports whether the run found any unused assets.
func (r *DetectionReport) HasUnused() bool {
	return len(r.Unused) > 0
}

// RemovalOutcome is the result of one removal pass over a report's
// unused list, either simulated (dry-run) or executed.
type RemovalOutcome struct {
	// DryRun is true when no file was actually deleted.
	DryRun bool `json:"dry_run"`

	// RemovedCount is the number of assets removed, or that would be
	// removed in dry-run mode.
	RemovedCount int `json:"removed_count"`

	// RemovedBytes is the total size of those assets.
	RemovedBytes int64 `json:"removed_bytes"`

	// Errors holds one message per asset that could not be deleted.
	// A failed deletion never prevents attempting the remaining assets.
	Errors []string `json:"errors,omitempty"`
}
