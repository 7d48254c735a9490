package detect

import "github.com/assetsweep/assetsweep/internal/model"

// Diff computes the unused set: every inventory path not present in the
// reference set. Reference entries absent from the inventory (stale
// references, assets outside the scanned root) are silently ignored.
//
// Both sides must already use the same normalized project-relative path
// convention; this is a precondition of the scanners, not re-validated
// here.
func Diff(inventory, referenced model.PathSet) model.PathSet {
	unused := make(model.PathSet, len(inventory))
	for p := range inventory {
		if !referenced.Contains(p) {
			unused.Add(p)
		}
	}
	return unused
}
