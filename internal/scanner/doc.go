// Package scanner provides the two scanners that feed a detection run.
//
// InventoryScanner walks the asset directory and builds the inventory of
// candidate assets. SourceScanner implements the ReferenceScanner
// interface by reading the project's source and configuration files and
// collecting every asset path they mention; HTML files are additionally
// parsed structurally for src/href/srcset attributes.
//
// The inventory scan is a single sequential walk. The reference scanner
// reads source files with bounded concurrency, which is safe because each
// file contributes to the reference set independently.
package scanner
