// Package model defines the data structures shared across assetsweep.
// It contains the asset inventory types, the detection report produced by
// a scan run, and the outcome of a removal pass.
//
// Design decision: We keep all cross-package data structures in a single
// model package rather than scattering them, so that report writers, the
// history database, and the pipeline all serialize the same types without
// import cycles.
package model
