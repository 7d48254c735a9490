package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/assetsweep/assetsweep/internal/model"
)

// InventoryScanner recursively walks the asset directory and collects
// every file whose lowercase extension is in the recognized set.
// Paths in the inventory are normalized relative to the project root.
type InventoryScanner struct {
	// projectRoot is the absolute project root paths are made relative to.
	projectRoot string

	// assetRoot is the absolute path of the directory to walk.
	assetRoot string

	// extensions maps recognized lowercase extensions to their category.
	extensions map[string]string

	// logger for structured logging.
	logger *slog.Logger
}

// InventoryOption configures an InventoryScanner.
type InventoryOption func(*InventoryScanner)

// WithInventoryLogger sets a custom logger for the inventory scanner.
func WithInventoryLogger(logger *slog.Logger) InventoryOption {
	return func(s *InventoryScanner) {
		s.logger = logger
	}
}

// NewInventoryScanner creates an inventory scanner for the given roots.
// assetRoot must be the absolute path of the asset directory and must be
// located under projectRoot.
func NewInventoryScanner(projectRoot, assetRoot string, extensions map[string]string, opts ...InventoryOption) *InventoryScanner {
	s := &InventoryScanner{
		projectRoot: projectRoot,
		assetRoot:   assetRoot,
		extensions:  extensions,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan walks the asset directory and returns the inventory plus the
// non-fatal error messages collected along the way.
//
// A missing asset root is fatal and returns ErrMissingAssetRoot wrapped
// with the directory path. An unreadable subdirectory is recorded as a
// non-fatal error and its subtree skipped; siblings continue, so a single
// unreadable directory never aborts the whole scan.
//
// The returned inventory contains no duplicates and does not depend on
// traversal order; consumers sort before presenting.
func (s *InventoryScanner) Scan() (model.PathSet, []string, error) {
	info, err := os.Stat(s.assetRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingAssetRoot, s.assetRoot)
		}
		return nil, nil, fmt.Errorf("failed to stat asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", ErrMissingAssetRoot, s.assetRoot)
	}

	inventory := make(model.PathSet)
	var scanErrors []string

	walkErr := filepath.WalkDir(s.assetRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry (permissions, race with deletion).
			// Record it and keep walking the siblings.
			scanErrors = append(scanErrors, fmt.Sprintf("cannot read %s: %v", model.RelativePath(s.projectRoot, path), err))
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}

		rel := model.RelativePath(s.projectRoot, path)
		inventory.Add(rel)
		s.logger.Debug("found asset", "path", path)
		return nil
	})
	if walkErr != nil {
		return nil, scanErrors, fmt.Errorf("asset scan failed: %w", walkErr)
	}

	s.logger.Info("inventory scan complete",
		"dir", s.assetRoot,
		"assets", len(inventory),
		"errors", len(scanErrors),
	)

	return inventory, scanErrors, nil
}

// Category returns the asset category (image, font, audio, video) for a
// path, or "other" if the extension is not recognized.
func (s *InventoryScanner) Category(path string) string {
	if category, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return category
	}
	return "other"
}
