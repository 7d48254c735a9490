// Package database provides SQLite-based storage for detection run history.
//
// Each detect run can persist its report here, keyed by project root, so
// later runs can be compared against earlier ones without keeping JSON
// files around.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the history is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
