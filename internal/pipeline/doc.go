// Package pipeline orchestrates the stages of a detection run.
//
// A run is a single sequential pass in fixed order: scan inventory,
// obtain references, diff, size, optionally group duplicates, then build
// the report. Each stage is a Step that receives the per-run state and
// either completes it or fails fatally. Non-fatal problems (unreadable
// subdirectory, failed stat) are accumulated in the report instead.
//
// Design decision: We use a step pipeline rather than direct function
// calls because it gives every stage consistent logging and cancellation
// handling, and it makes the safety ordering explicit: the report is
// always fully computed before any destructive action can run, since
// removal is not a pipeline step at all.
package pipeline
