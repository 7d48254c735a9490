package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/assetsweep/assetsweep/internal/config"
	"github.com/assetsweep/assetsweep/internal/model"
	"gopkg.in/yaml.v3"
)

// writeTestProject creates a small project tree with one referenced and
// one unused asset, returning the project root.
func writeTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "assets", "logo.png"), "logo-bytes")
	mustWriteFile(t, filepath.Join(root, "assets", "orphan.png"), "orphan-bytes")
	mustWriteFile(t, filepath.Join(root, "lib", "main.dart"),
		`void main() { load("assets/logo.png"); }`)

	return root
}

// mustWriteFile writes a file, creating parent directories.
func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// TestNewDetectCmd tests the detect command creation.
func TestNewDetectCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDetectCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "detect [project-root]" {
			t.Errorf("expected use 'detect [project-root]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has dir flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("dir")
		if flag == nil {
			t.Fatal("expected dir flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultAssetDir {
			t.Errorf("expected default %q, got %q", config.DefaultAssetDir, flag.DefValue)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has script flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("script") == nil {
			t.Fatal("expected script flag")
		}
	})

	t.Run("has duplicates flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("duplicates") == nil {
			t.Fatal("expected duplicates flag")
		}
	})

	t.Run("has no-history flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("no-history") == nil {
			t.Fatal("expected no-history flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults with no args", func(t *testing.T) {
		t.Parallel()

		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !filepath.IsAbs(cfg.ProjectRoot) {
			t.Errorf("expected absolute project root, got %q", cfg.ProjectRoot)
		}
		if cfg.AssetDir != config.DefaultAssetDir {
			t.Errorf("expected default asset dir, got %q", cfg.AssetDir)
		}
		if !cfg.SaveHistory {
			t.Error("expected history saving by default")
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{"--dir", "static", "--duplicates", "--no-history", "-j"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{root})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ProjectRoot != root {
			t.Errorf("expected project root %q, got %q", root, cfg.ProjectRoot)
		}
		if cfg.AssetDir != "static" {
			t.Errorf("expected asset dir 'static', got %q", cfg.AssetDir)
		}
		if !cfg.Duplicates {
			t.Error("expected duplicates enabled")
		}
		if cfg.SaveHistory {
			t.Error("expected history saving disabled")
		}
		if !cfg.JSONReport {
			t.Error("expected JSON report enabled")
		}
	})

	t.Run("loads project config file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		mustWriteFile(t, filepath.Join(root, ".assetsweep"),
			"assetDir: static\nkeepAssets:\n  - static/keep.png\n")

		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{root})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.AssetDir != "static" {
			t.Errorf("expected asset dir from config file, got %q", cfg.AssetDir)
		}
		if len(cfg.KeepAssets) != 1 || cfg.KeepAssets[0] != "static/keep.png" {
			t.Errorf("expected keep assets from config file, got %v", cfg.KeepAssets)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestDetectEndToEnd runs the detect command against a real project tree.
func TestDetectEndToEnd(t *testing.T) {
	t.Run("writes JSON report to file", func(t *testing.T) {
		root := writeTestProject(t)
		reportPath := filepath.Join(t.TempDir(), "out", "report.json")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"detect", "--json", "--no-history", "-o", reportPath, root})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var detectionReport model.DetectionReport
		if err := json.Unmarshal(data, &detectionReport); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}

		if detectionReport.Summary.TotalAssets != 2 {
			t.Errorf("expected 2 assets, got %d", detectionReport.Summary.TotalAssets)
		}
		if detectionReport.Summary.UnusedCount != 1 {
			t.Errorf("expected 1 unused asset, got %d", detectionReport.Summary.UnusedCount)
		}
		if len(detectionReport.Unused) != 1 || detectionReport.Unused[0].Path != "assets/orphan.png" {
			t.Errorf("expected assets/orphan.png unused, got %v", detectionReport.Unused)
		}
	})

	t.Run("writes cleanup script", func(t *testing.T) {
		root := writeTestProject(t)
		reportPath := filepath.Join(t.TempDir(), "report.json")
		scriptPath := filepath.Join(t.TempDir(), "cleanup.sh")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"detect", "--json", "--no-history", "-o", reportPath, "-s", scriptPath, root})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		script, err := os.ReadFile(scriptPath)
		if err != nil {
			t.Fatalf("failed to read script: %v", err)
		}
		if !strings.Contains(string(script), "rm -f 'assets/orphan.png'") {
			t.Errorf("expected rm command in script, got:\n%s", script)
		}

		info, err := os.Stat(scriptPath)
		if err != nil {
			t.Fatalf("failed to stat script: %v", err)
		}
		if info.Mode().Perm()&0100 == 0 {
			t.Error("expected script to be executable")
		}
	})

	t.Run("missing asset directory is fatal", func(t *testing.T) {
		root := t.TempDir()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"detect", "--no-history", root})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing asset directory")
		}
	})
}

// TestDetectHelpConfigExample tests that the configuration example shown
// in the detect help text parses with the real configuration file schema.
func TestDetectHelpConfigExample(t *testing.T) {
	t.Parallel()

	long := NewDetectCmd().Long
	marker := "Configuration file (.assetsweep) example:\n"
	idx := strings.Index(long, marker)
	if idx < 0 {
		t.Fatal("help text has no configuration file example")
	}

	// Strip the two-space help indentation so the block is plain YAML.
	example := strings.TrimPrefix(long[idx+len(marker):], "  ")
	example = strings.ReplaceAll(example, "\n  ", "\n")

	var cf config.File
	if err := yaml.Unmarshal([]byte(example), &cf); err != nil {
		t.Fatalf("failed to parse help example: %v", err)
	}

	if cf.AssetDir != "static" {
		t.Errorf("expected assetDir 'static', got %q", cf.AssetDir)
	}
	if len(cf.KeepAssets) != 1 || cf.KeepAssets[0] != "static/logo-dark.png" {
		t.Errorf("expected keepAssets ['static/logo-dark.png'], got %v", cf.KeepAssets)
	}
	if len(cf.IgnoreDirs) != 1 || cf.IgnoreDirs[0] != "third_party" {
		t.Errorf("expected ignoreDirs ['third_party'], got %v", cf.IgnoreDirs)
	}
}
