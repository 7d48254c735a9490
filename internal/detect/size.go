package detect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/assetsweep/assetsweep/internal/model"
)

// Sizer resolves byte sizes for the unused subset of the inventory.
// Sizes are looked up lazily, only for unused assets, so referenced
// assets never cost a stat call.
type Sizer struct {
	// projectRoot is the absolute root asset paths are relative to.
	projectRoot string

	// logger for structured logging.
	logger *slog.Logger
}

// SizerOption configures a Sizer.
type SizerOption func(*Sizer)

// WithSizerLogger sets a custom logger for the sizer.
func WithSizerLogger(logger *slog.Logger) SizerOption {
	return func(s *Sizer) {
		s.logger = logger
	}
}

// NewSizer creates a Sizer anchored at the given project root.
func NewSizer(projectRoot string, opts ...SizerOption) *Sizer {
	s := &Sizer{
		projectRoot: projectRoot,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Size stats every unused path and returns the per-asset entries sorted
// by size descending, plus the total bytes and any non-fatal error
// messages.
//
// A failed stat (file removed between scan and sizing) records size 0
// and an error message; the remaining assets are still sized. The input
// is iterated in lexicographic order and the sort is stable, so
// equal-size entries keep lexicographic path order.
func (s *Sizer) Size(unused model.PathSet) ([]model.UnusedAsset, int64, []string) {
	assets := make([]model.UnusedAsset, 0, len(unused))
	var total int64
	var sizeErrors []string

	for _, p := range unused.Sorted() {
		abs := filepath.Join(s.projectRoot, filepath.FromSlash(p))

		var size int64
		info, err := os.Stat(abs)
		if err != nil {
			sizeErrors = append(sizeErrors, fmt.Sprintf("cannot stat %s: %v", p, err))
			s.logger.Warn("failed to stat unused asset", "path", abs, "error", err)
		} else {
			size = info.Size()
		}

		assets = append(assets, model.UnusedAsset{
			Path:      p,
			SizeBytes: size,
			SizeHuman: model.FormatBytes(size),
		})
		total += size
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].SizeBytes > assets[j].SizeBytes
	})

	return assets, total, sizeErrors
}
