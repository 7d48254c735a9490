package detect

import "github.com/assetsweep/assetsweep/internal/model"

// BuildReport fills the report's sorted lists and summary from the
// results of the preceding stages. After this the report is complete and
// treated as immutable; writers and the history database only read it.
//
// Inventory and referenced lists are sorted lexicographically so runs
// over an unchanged tree produce identical reports. The unused list is
// taken as produced by the sizer: size descending, lexicographic
// tie-break. categorize maps an asset path to its category for the
// per-category breakdown; it may be nil to skip the breakdown.
func BuildReport(report *model.DetectionReport, inventory, referenced model.PathSet, unused []model.UnusedAsset, totalBytes int64, categorize func(string) string) {
	report.Inventory = inventory.Sorted()
	report.Referenced = referenced.Sorted()
	report.Unused = unused

	var byCategory map[string]int
	if categorize != nil && len(unused) > 0 {
		byCategory = make(map[string]int)
		for _, asset := range unused {
			byCategory[categorize(asset.Path)]++
		}
	}

	report.Summary = model.Summary{
		TotalAssets:      len(report.Inventory),
		ReferencedCount:  len(report.Referenced),
		UnusedCount:      len(unused),
		UnusedBytes:      totalBytes,
		UnusedBytesHuman: model.FormatBytes(totalBytes),
		UnusedByCategory: byCategory,
		ErrorCount:       len(report.Errors),
	}
}
