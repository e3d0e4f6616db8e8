// Package database provides SQLite-based storage for validation history.
//
// This package implements the RunDB, which stores one row per validation
// run: the site root, the pass/fail/skip/warn counters, and the complete
// report serialized as JSON. The history command reads this table to list
// past runs and to diff two runs of the same root.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
