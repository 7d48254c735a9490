package config

// File represents the structure of the .assetsweep configuration file.
// Every field is optional; unset fields keep their defaults.
type File struct {
	// AssetDir overrides the asset directory, relative to the project
	// root.
	AssetDir string `yaml:"assetDir,omitempty"`

	// AssetExtensions adds recognized asset extensions on top of the
	// defaults. Keys are extensions including the leading dot, values
	// are the category (image, font, audio, video).
	AssetExtensions map[string]string `yaml:"assetExtensions,omitempty"`

	// SourceExtensions replaces the scanned source extensions when
	// non-empty.
	SourceExtensions []string `yaml:"sourceExtensions,omitempty"`

	// IgnoreDirs replaces the ignored directory names when non-empty.
	IgnoreDirs []string `yaml:"ignoreDirs,omitempty"`

	// KeepAssets lists asset paths (relative to the project root) that
	// are never reported as unused even when no reference is found.
	// This is the escape hatch for assets reached through computed
	// paths, which the reference scanner cannot see.
	KeepAssets []string `yaml:"keepAssets,omitempty"`
}

// Apply merges the file's settings into the config.
// File values win over defaults; additive fields (AssetExtensions) are
// merged, list fields replace wholesale.
func (f *File) Apply(c *Config) {
	if f.AssetDir != "" {
		c.AssetDir = f.AssetDir
	}
	for ext, category := range f.AssetExtensions {
		c.AssetExtensions[ext] = category
	}
	if len(f.SourceExtensions) > 0 {
		c.SourceExtensions = append([]string(nil), f.SourceExtensions...)
	}
	if len(f.IgnoreDirs) > 0 {
		c.IgnoreDirs = append([]string(nil), f.IgnoreDirs...)
	}
	if len(f.KeepAssets) > 0 {
		c.KeepAssets = append([]string(nil), f.KeepAssets...)
	}
}
