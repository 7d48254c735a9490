package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/assetsweep/assetsweep/internal/config"
	"github.com/assetsweep/assetsweep/internal/model"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show details about asset files",
		Long: `Inspect prints size, category, content hash, and embedded metadata
for asset files.

For JPEG and TIFF images, EXIF metadata is shown when present. This
helps decide whether an unused asset is safe to delete or worth keeping
somewhere else first.

Examples:
  # Inspect a single asset
  assetsweep inspect assets/photo.jpg

  # Inspect several assets at once
  assetsweep inspect assets/a.png assets/b.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInspectCmd,
	}

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for i, path := range args {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := inspectFile(cmd, path); err != nil {
			// Keep inspecting the remaining files.
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot inspect %s: %v\n", path, err)
		}
	}

	return nil
}

// inspectFile prints details about one asset file.
func inspectFile(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return err
	}

	sum := blake2b.Sum256(data)

	fmt.Fprintf(out, "File:     %s\n", path)
	fmt.Fprintf(out, "Size:     %s (%d bytes)\n", model.FormatBytes(info.Size()), info.Size())
	fmt.Fprintf(out, "Category: %s\n", categoryOf(path))
	fmt.Fprintf(out, "BLAKE2b:  %s\n", hex.EncodeToString(sum[:]))

	printEXIF(cmd, data)

	return nil
}

// categoryOf returns the asset category for a file path.
func categoryOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if category, ok := config.DefaultAssetExtensions[ext]; ok {
		return category
	}
	return "other"
}

// printEXIF prints embedded EXIF metadata when present.
// Files without EXIF data print nothing; parse failures are silent
// because most asset formats carry no EXIF at all.
func printEXIF(cmd *cobra.Command, data []byte) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil || len(entries) == 0 {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "EXIF:")
	for _, entry := range entries {
		if entry.TagName == "" || entry.Formatted == "" {
			continue
		}
		fmt.Fprintf(out, "  %-24s %s\n", entry.TagName+":", entry.Formatted)
	}
}
