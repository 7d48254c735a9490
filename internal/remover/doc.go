// Package remover deletes the unused assets named by a detection
// report, or simulates doing so.
//
// Dry-run is the default and callers must explicitly opt into
// destructive execution: deletion is irreversible and there is no trash
// mechanism. Failures are isolated per asset so that one undeletable
// file never blocks the rest of the cleanup.
package remover
