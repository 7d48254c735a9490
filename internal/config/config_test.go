package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig tests that defaults are populated.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.AssetDir != DefaultAssetDir {
		t.Errorf("AssetDir = %q, want %q", cfg.AssetDir, DefaultAssetDir)
	}
	if cfg.ScanConcurrency != DefaultScanConcurrency {
		t.Errorf("ScanConcurrency = %d, want %d", cfg.ScanConcurrency, DefaultScanConcurrency)
	}
	if cfg.AssetExtensions[".png"] != "image" {
		t.Errorf("AssetExtensions[.png] = %q, want %q", cfg.AssetExtensions[".png"], "image")
	}
	if cfg.AssetExtensions[".woff2"] != "font" {
		t.Errorf("AssetExtensions[.woff2] = %q, want %q", cfg.AssetExtensions[".woff2"], "font")
	}

	// The defaults map must not be shared between Config instances.
	cfg.AssetExtensions[".xyz"] = "image"
	if _, ok := NewConfig().AssetExtensions[".xyz"]; ok {
		t.Error("mutating one config's extensions leaked into a fresh config")
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.ProjectRoot = "/tmp/project"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "missing project root",
			mutate:  func(c *Config) { c.ProjectRoot = "" },
			wantErr: ErrNoProjectRoot,
		},
		{
			name:    "missing asset dir",
			mutate:  func(c *Config) { c.AssetDir = "" },
			wantErr: ErrNoAssetDir,
		},
		{
			name:    "absolute asset dir",
			mutate:  func(c *Config) { c.AssetDir = "/etc/assets" },
			wantErr: ErrAbsoluteAssetDir,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.ScanConcurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFile tests YAML config loading and merging.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies settings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := []byte(`assetDir: res
assetExtensions:
  ".lottie": image
ignoreDirs:
  - vendor
keepAssets:
  - res/img/dynamic_banner.png
`)
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if cfg.AssetDir != "res" {
			t.Errorf("AssetDir = %q, want %q", cfg.AssetDir, "res")
		}
		if cfg.AssetExtensions[".lottie"] != "image" {
			t.Error("expected .lottie to be merged into asset extensions")
		}
		if cfg.AssetExtensions[".png"] != "image" {
			t.Error("expected default extensions to survive the merge")
		}
		if len(cfg.IgnoreDirs) != 1 || cfg.IgnoreDirs[0] != "vendor" {
			t.Errorf("IgnoreDirs = %v, want [vendor]", cfg.IgnoreDirs)
		}
		if len(cfg.KeepAssets) != 1 || cfg.KeepAssets[0] != "res/img/dynamic_banner.png" {
			t.Errorf("KeepAssets = %v, want one pinned asset", cfg.KeepAssets)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfigFile() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("malformed yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("assetDir: [broken"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

// TestFindConfigFile tests the config file search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("assetDir: res\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path, dir); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope"), ""); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("falls back to project root", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("assetDir: res\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile("", dir); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})
}
