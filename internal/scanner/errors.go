package scanner

import "errors"

// ErrMissingAssetRoot is returned when the asset directory to scan does
// not exist. This is fatal: without an inventory there is nothing to
// diff, so the run aborts before producing a report.
var ErrMissingAssetRoot = errors.New("asset directory does not exist")
