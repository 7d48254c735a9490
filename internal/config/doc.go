// Package config provides configuration structures and utilities for
// assetsweep. It defines the run options populated from CLI flags, the
// recognized asset and source extension sets, and the optional
// .assetsweep project configuration file.
package config
