package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultAssetDir is the default asset directory name, relative to
	// the project root. Mobile projects conventionally keep bundled
	// static assets under a top-level "assets" directory.
	DefaultAssetDir = "assets"

	// DefaultScanConcurrency bounds the number of source files the
	// reference scanner reads in parallel. The detection pipeline itself
	// is strictly sequential; this only applies inside the reference
	// scanner, whose workload (thousands of small source files) is
	// I/O-bound and embarrassingly parallel.
	DefaultScanConcurrency = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "assetsweep"
)

// DefaultAssetExtensions is the fixed set of recognized asset file
// extensions, grouped by category. Extensions are matched lowercase.
//
// Design decision: We enumerate extensions rather than sniffing content
// because the tool must be fast over large trees and because an asset
// directory containing, say, a stray .md file should not be treated as
// a deletable asset.
var DefaultAssetExtensions = map[string]string{
	// Images
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".gif":  "image",
	".webp": "image",
	".svg":  "image",
	".bmp":  "image",
	".ico":  "image",
	".heic": "image",

	// Fonts
	".ttf":   "font",
	".otf":   "font",
	".woff":  "font",
	".woff2": "font",
	".eot":   "font",

	// Audio
	".mp3":  "audio",
	".wav":  "audio",
	".ogg":  "audio",
	".m4a":  "audio",
	".aac":  "audio",
	".flac": "audio",

	// Video
	".mp4":  "video",
	".mov":  "video",
	".avi":  "video",
	".webm": "video",
	".mkv":  "video",
}

// DefaultSourceExtensions is the set of file extensions the reference
// scanner inspects for asset references. This covers the source and
// configuration files of a typical mobile project (Flutter, native iOS
// and Android, and embedded web views).
var DefaultSourceExtensions = []string{
	".dart", ".swift", ".kt", ".kts", ".java", ".m", ".mm",
	".ts", ".tsx", ".js", ".jsx", ".html", ".css",
	".json", ".xml", ".yaml", ".yml", ".gradle", ".plist",
}

// DefaultIgnoreDirs are directory names the reference scanner skips.
// These hold generated or third-party code whose references do not keep
// an asset alive in the project's own source tree.
var DefaultIgnoreDirs = []string{
	".git", "node_modules", "build", ".dart_tool", "Pods", ".gradle", "dist",
}

// Config holds all options for one assetsweep run.
// It is populated from CLI flags plus the optional .assetsweep file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// ProjectRoot is the absolute path to the project being analyzed.
	ProjectRoot string

	// AssetDir is the asset directory relative to ProjectRoot.
	AssetDir string

	// AssetExtensions maps recognized lowercase asset extensions to
	// their category (image, font, audio, video).
	AssetExtensions map[string]string

	// SourceExtensions are the file extensions scanned for references.
	SourceExtensions []string

	// IgnoreDirs are directory names skipped by the reference scanner.
	IgnoreDirs []string

	// KeepAssets are asset paths treated as referenced regardless of
	// what the reference scanner finds. Loaded from the project
	// configuration file.
	KeepAssets []string

	// ScanConcurrency bounds parallel source-file reads in the
	// reference scanner.
	ScanConcurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Duplicates enables content-hash grouping of unused assets.
	Duplicates bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ScriptFile, when set, is the path a shell cleanup script is
	// written to as a side effect of detection.
	ScriptFile string

	// ConfigFilePath is the path to the .assetsweep file.
	// If empty, the tool searches the project root and the home
	// directory.
	ConfigFilePath string

	// SaveHistory indicates whether to store the run in the history
	// database for later comparison.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	HistoryDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe defaults; callers override from flags and
// the project configuration file after creation.
func NewConfig() *Config {
	exts := make(map[string]string, len(DefaultAssetExtensions))
	for ext, category := range DefaultAssetExtensions {
		exts[ext] = category
	}

	return &Config{
		AssetDir:         DefaultAssetDir,
		AssetExtensions:  exts,
		SourceExtensions: append([]string(nil), DefaultSourceExtensions...),
		IgnoreDirs:       append([]string(nil), DefaultIgnoreDirs...),
		ScanConcurrency:  DefaultScanConcurrency,
	}
}

// AssetRoot returns the absolute path of the asset directory.
func (c *Config) AssetRoot() string {
	return filepath.Join(c.ProjectRoot, c.AssetDir)
}

// XDGDataDir returns the XDG data directory for assetsweep.
// On Linux: ~/.local/share/assetsweep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if c.ProjectRoot == "" {
		return ErrNoProjectRoot
	}

	if c.AssetDir == "" {
		return ErrNoAssetDir
	}

	if filepath.IsAbs(c.AssetDir) {
		return ErrAbsoluteAssetDir
	}

	if c.ScanConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
