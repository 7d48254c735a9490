package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/assetsweep/assetsweep/internal/config"
	"github.com/assetsweep/assetsweep/internal/detect"
	"github.com/assetsweep/assetsweep/internal/model"
	"github.com/assetsweep/assetsweep/internal/scanner"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// newDetectPipeline wires the default steps over a temp project.
func newDetectPipeline(root string, duplicates bool) (*Pipeline, *Run) {
	cfg := config.NewConfig()
	cfg.ProjectRoot = root

	inv := scanner.NewInventoryScanner(root, cfg.AssetRoot(), cfg.AssetExtensions)
	refFactory := func(inventory model.PathSet) scanner.ReferenceScanner {
		return scanner.NewSourceScanner(root, cfg.AssetDir, cfg.SourceExtensions,
			cfg.IgnoreDirs, cfg.AssetExtensions, inventory)
	}
	sizer := detect.NewSizer(root)

	p := New()
	p.AddSteps(DefaultSteps(inv, refFactory, sizer, root, duplicates, nil)...)

	return p, &Run{Report: model.NewDetectionReport(root, cfg.AssetDir)}
}

// TestDetectionRun tests the full pipeline over a small project tree.
func TestDetectionRun(t *testing.T) {
	t.Parallel()

	t.Run("simple diff scenario", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "assets/a.png", "aaaa")
		writeFile(t, root, "assets/b.png", "bbbbbbbb")
		writeFile(t, root, "assets/c.png", "cc")
		writeFile(t, root, "lib/main.dart", `Image.asset('assets/a.png');`)

		p, run := newDetectPipeline(root, false)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		report := run.Report
		if report.Summary.TotalAssets != 3 {
			t.Errorf("TotalAssets = %d, want 3", report.Summary.TotalAssets)
		}
		if report.Summary.UnusedCount != 2 {
			t.Errorf("UnusedCount = %d, want 2", report.Summary.UnusedCount)
		}

		// Unused is sorted by size descending: b.png (8) before c.png (2).
		if report.Unused[0].Path != "assets/b.png" || report.Unused[1].Path != "assets/c.png" {
			t.Errorf("Unused = %v, want [assets/b.png assets/c.png]", report.Unused)
		}
		if report.Summary.UnusedBytes != 10 {
			t.Errorf("UnusedBytes = %d, want 10", report.Summary.UnusedBytes)
		}
	})

	t.Run("missing asset root is fatal and leaves no report", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir() // no assets directory

		p, run := newDetectPipeline(root, false)
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, scanner.ErrMissingAssetRoot) {
			t.Fatalf("Execute() error = %v, want ErrMissingAssetRoot", err)
		}
		if run.Report.Inventory != nil {
			t.Error("expected no report content after fatal inventory failure")
		}
	})

	t.Run("duplicate step groups identical content", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "assets/one.png", "identical")
		writeFile(t, root, "assets/two.png", "identical")

		p, run := newDetectPipeline(root, true)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if len(run.Report.Duplicates) != 1 {
			t.Fatalf("Duplicates = %v, want one group", run.Report.Duplicates)
		}
		if run.Report.Duplicates[0].WastedBytes != int64(len("identical")) {
			t.Errorf("WastedBytes = %d, want %d", run.Report.Duplicates[0].WastedBytes, len("identical"))
		}
	})

	t.Run("two runs over an unchanged tree agree", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "assets/a.png", "aaaa")
		writeFile(t, root, "assets/b.png", "bb")
		writeFile(t, root, "lib/main.dart", `load("assets/a.png")`)

		stripTime := func(r *model.DetectionReport) *model.DetectionReport {
			copied := *r
			copied.GeneratedAt = time.Time{}
			return &copied
		}

		p1, run1 := newDetectPipeline(root, false)
		if err := p1.Execute(context.Background(), run1); err != nil {
			t.Fatal(err)
		}
		p2, run2 := newDetectPipeline(root, false)
		if err := p2.Execute(context.Background(), run2); err != nil {
			t.Fatal(err)
		}

		j1, err := json.Marshal(stripTime(run1.Report))
		if err != nil {
			t.Fatal(err)
		}
		j2, err := json.Marshal(stripTime(run2.Report))
		if err != nil {
			t.Fatal(err)
		}
		if string(j1) != string(j2) {
			t.Errorf("reports differ across identical runs:\n%s\n%s", j1, j2)
		}
	})
}
