package detect

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/assetsweep/assetsweep/internal/model"
)

// FindDuplicates groups unused assets with identical content by
// BLAKE2b-256 digest. Groups are sorted by wasted bytes descending, then
// by hash for a stable order; paths within a group are sorted.
//
// Assets that cannot be read are skipped with a non-fatal error message;
// a duplicate group missing one member is still actionable.
func FindDuplicates(projectRoot string, unused []model.UnusedAsset, logger *slog.Logger) ([]model.DuplicateGroup, []string) {
	if logger == nil {
		logger = slog.Default()
	}

	type entry struct {
		paths []string
		size  int64
	}
	byHash := make(map[string]*entry)
	var hashErrors []string

	for _, asset := range unused {
		abs := filepath.Join(projectRoot, filepath.FromSlash(asset.Path))
		digest, err := hashFile(abs)
		if err != nil {
			hashErrors = append(hashErrors, fmt.Sprintf("cannot hash %s: %v", asset.Path, err))
			logger.Warn("failed to hash unused asset", "path", abs, "error", err)
			continue
		}

		e, ok := byHash[digest]
		if !ok {
			e = &entry{size: asset.SizeBytes}
			byHash[digest] = e
		}
		e.paths = append(e.paths, asset.Path)
	}

	var groups []model.DuplicateGroup
	for digest, e := range byHash {
		if len(e.paths) < 2 {
			continue
		}
		sort.Strings(e.paths)
		groups = append(groups, model.DuplicateGroup{
			Hash:        digest,
			Paths:       e.paths,
			SizeBytes:   e.size,
			WastedBytes: e.size * int64(len(e.paths)-1),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].WastedBytes != groups[j].WastedBytes {
			return groups[i].WastedBytes > groups[j].WastedBytes
		}
		return groups[i].Hash < groups[j].Hash
	})

	return groups, hashErrors
}

// hashFile returns the hex BLAKE2b-256 digest of a file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from our own inventory
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
