// Package main provides the entry point for the assetsweep CLI.
//
// assetsweep finds asset files (images, fonts, audio, video) that no
// source file in a project references, and removes them safely on
// request.
//
// Usage:
//
//	assetsweep detect [project-root]
//	assetsweep clean --execute [project-root]
//
// See --help for all available options.
package main

// main is the entry point for assetsweep.
func main() {
	Execute()
}
