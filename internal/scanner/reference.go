package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/assetsweep/assetsweep/internal/model"
)

// ReferenceScanner produces the set of asset paths the codebase
// references. The detection pipeline treats any implementation of this
// interface as valid; a failure is fatal because a correct diff is
// impossible without a reference set.
type ReferenceScanner interface {
	// ScanReferences returns the set of referenced asset paths,
	// normalized relative to the project root.
	ScanReferences(ctx context.Context) (model.PathSet, error)
}

// SourceScanner implements ReferenceScanner by reading the project's
// source and configuration files and extracting every string literal
// that names an asset. HTML files are additionally parsed structurally.
//
// Matching is resolved against the inventory: a literal is counted as a
// reference if it is an inventory path, resolves to one when prefixed
// with the asset directory, or suffix-matches an inventory path by file
// name. Literals that carry the asset directory prefix are kept even
// when no inventory entry matches, so stale references stay visible in
// the report.
type SourceScanner struct {
	// projectRoot is the absolute project root.
	projectRoot string

	// assetDir is the asset directory relative to the project root.
	assetDir string

	// sourceExts is the set of scanned file extensions.
	sourceExts map[string]bool

	// ignoreDirs is the set of directory names skipped during the walk.
	ignoreDirs map[string]bool

	// inventory is the asset inventory used to resolve literals.
	inventory model.PathSet

	// extraRefs are paths treated as referenced unconditionally
	// (the keepAssets escape hatch from the project configuration).
	extraRefs []string

	// concurrency bounds the number of files read in parallel.
	concurrency int

	// literalPattern matches quoted strings ending in a recognized
	// asset extension. Built once per scanner from the extension set.
	literalPattern *regexp.Regexp

	// logger for structured logging.
	logger *slog.Logger
}

// SourceScannerOption configures a SourceScanner.
type SourceScannerOption func(*SourceScanner)

// WithSourceLogger sets a custom logger for the source scanner.
func WithSourceLogger(logger *slog.Logger) SourceScannerOption {
	return func(s *SourceScanner) {
		s.logger = logger
	}
}

// WithConcurrency bounds parallel source-file reads. Default is 8.
func WithConcurrency(n int) SourceScannerOption {
	return func(s *SourceScanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithExtraReferences marks the given project-relative paths as
// referenced regardless of what the source tree mentions.
func WithExtraReferences(paths []string) SourceScannerOption {
	return func(s *SourceScanner) {
		s.extraRefs = paths
	}
}

// NewSourceScanner creates a reference scanner over the project tree.
// The inventory is used to resolve bare file names found in literals to
// full asset paths; run the inventory scan first.
func NewSourceScanner(projectRoot, assetDir string, sourceExts []string, ignoreDirs []string, assetExts map[string]string, inventory model.PathSet, opts ...SourceScannerOption) *SourceScanner {
	s := &SourceScanner{
		projectRoot:    projectRoot,
		assetDir:       model.NormalizePath(assetDir),
		sourceExts:     make(map[string]bool, len(sourceExts)),
		ignoreDirs:     make(map[string]bool, len(ignoreDirs)),
		inventory:      inventory,
		concurrency:    8,
		literalPattern: buildLiteralPattern(assetExts),
		logger:         slog.Default(),
	}
	for _, ext := range sourceExts {
		s.sourceExts[strings.ToLower(ext)] = true
	}
	for _, dir := range ignoreDirs {
		s.ignoreDirs[dir] = true
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// buildLiteralPattern compiles the regex matching quoted asset literals.
// The extension alternation is derived from the recognized asset set so
// that custom extensions from the project config are picked up too.
func buildLiteralPattern(assetExts map[string]string) *regexp.Regexp {
	exts := make([]string, 0, len(assetExts))
	for ext := range assetExts {
		exts = append(exts, regexp.QuoteMeta(strings.TrimPrefix(ext, ".")))
	}
	sort.Strings(exts)
	return regexp.MustCompile(`(?i)["']([^"'\n]+?\.(?:` + strings.Join(exts, "|") + `))["']`)
}

// ScanReferences walks the project tree and returns every referenced
// asset path. Source files are read with bounded concurrency; the
// resulting set does not depend on file order.
func (s *SourceScanner) ScanReferences(ctx context.Context) (model.PathSet, error) {
	files, err := s.collectSourceFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate source files: %w", err)
	}

	s.logger.Info("scanning source files for asset references",
		"files", len(files),
		"concurrency", s.concurrency,
	)

	referenced := make(model.PathSet)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, file := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			refs, err := s.scanFile(file)
			if err != nil {
				// Unreadable source files are skipped, not fatal.
				s.logger.Warn("skipping unreadable source file", "file", file, "error", err)
				return nil
			}

			mu.Lock()
			for _, ref := range refs {
				referenced.Add(ref)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reference scan failed: %w", err)
	}

	for _, extra := range s.extraRefs {
		referenced.Add(model.NormalizePath(extra))
	}

	s.logger.Info("reference scan complete", "referenced", len(referenced))
	return referenced, nil
}

// collectSourceFiles enumerates source files under the project root,
// skipping ignored directories and the asset directory itself.
func (s *SourceScanner) collectSourceFiles() ([]string, error) {
	assetRoot := filepath.Join(s.projectRoot, filepath.FromSlash(s.assetDir))

	var files []string
	err := filepath.WalkDir(s.projectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.ignoreDirs[d.Name()] || path == assetRoot {
				return fs.SkipDir
			}
			return nil
		}

		if s.sourceExts[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// scanFile extracts the referenced asset paths from one source file.
func (s *SourceScanner) scanFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from our own walk
	if err != nil {
		return nil, err
	}

	var candidates []string
	if strings.EqualFold(filepath.Ext(path), ".html") {
		candidates, err = extractHTMLRefs(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
	}
	for _, match := range s.literalPattern.FindAllStringSubmatch(string(data), -1) {
		candidates = append(candidates, match[1])
	}

	var refs []string
	for _, c := range candidates {
		if ref, ok := s.resolve(c); ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// resolve maps a raw literal to an asset path, reporting whether the
// literal counts as a reference.
func (s *SourceScanner) resolve(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return "", false
	}
	p := model.NormalizePath(strings.TrimPrefix(raw, "./"))

	// Exact inventory path.
	if s.inventory.Contains(p) {
		return p, true
	}

	// Path relative to the asset directory.
	withDir := s.assetDir + "/" + p
	if s.inventory.Contains(withDir) {
		return withDir, true
	}

	// Literal carrying the asset directory prefix but matching nothing
	// on disk: keep it, so stale references show up in the report.
	if strings.HasPrefix(p, s.assetDir+"/") {
		return p, true
	}

	// Bare file name; match by suffix against the inventory.
	if !strings.Contains(p, "/") {
		if full, ok := s.inventory.HasSuffixPath(p); ok {
			return full, true
		}
	}

	return "", false
}
