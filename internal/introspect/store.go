// Package introspect backs the `--trace-gc` flag and the introspect.*
// host builtins with a modernc.org/sqlite-backed record of reclaimer
// collection cycles (SPEC_FULL.md §4.10). It is additive instrumentation:
// internal/reclaimer and internal/evaluator work identically with no Store
// configured, and only this package imports database/sql or sqlite at all,
// keeping the core pipeline's dependency surface unchanged.
//
// Grounded on the `sql.Open("sqlite", dsn)` + blank `modernc.org/sqlite`
// import pattern shown in the pack's basil evaluator
// (other_examples/sambeau-basil__evaluator.go), the only retrieved example
// that wires a database, generalized here from basil's per-request
// connection cache into a single long-lived Store opened once by the CLI.
package introspect

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/zelolang/zelo/internal/reclaimer"
)

const schema = `
CREATE TABLE IF NOT EXISTS gc_events (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	phase         TEXT    NOT NULL,
	young_count   INTEGER NOT NULL,
	old_count     INTEGER NOT NULL,
	promoted      INTEGER NOT NULL,
	reclaimed     INTEGER NOT NULL,
	at_uuid       TEXT    NOT NULL
);`

// Store persists one row per reclaimer collection cycle.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and connects to the sqlite database at path,
// ensuring the gc_events table exists. Callers must Close it when done.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("introspect: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("introspect: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RecordEvent inserts one gc_events row, stamping it with a fresh UUID
// (spec.md §4.7's uuid native reuses the same library for the same reason:
// a cheap, collision-free correlation id).
func (s *Store) RecordEvent(phase string, youngCount, oldCount, promoted, reclaimed int) error {
	_, err := s.db.Exec(
		`INSERT INTO gc_events (phase, young_count, old_count, promoted, reclaimed, at_uuid) VALUES (?, ?, ?, ?, ?, ?)`,
		phase, youngCount, oldCount, promoted, reclaimed, uuid.NewString(),
	)
	return err
}

// Hook returns a closure matching evaluator.Evaluator.TraceGC's signature,
// so wiring the store into the evaluator is one assignment:
// `ev.TraceGC = store.Hook(gc)`. It reads young/old counts from gc itself,
// since TraceGC's own parameters don't carry them (Collect has already
// reset the young generation by the time TraceGC fires).
func (s *Store) Hook(gc *reclaimer.GC) func(promoted, reclaimed int, full bool) {
	return func(promoted, reclaimed int, full bool) {
		phase := "young"
		if full {
			phase = "full"
		}
		// Recording errors are not fatal to evaluation: a broken trace
		// store must never take down the program it is merely observing.
		_ = s.RecordEvent(phase, gc.YoungCount(), gc.OldCount(), promoted, reclaimed)
	}
}

// EventCount returns the number of recorded gc_events rows, used by tests
// and by `introspect.traceCount` when a Store is configured.
func (s *Store) EventCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM gc_events`).Scan(&n)
	return n, err
}
