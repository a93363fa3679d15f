package store

import (
	"database/sql"

	_ "modernc.org/sqlite" // provides the "sqlite" database/sql driver
)

// Open returns a handle to the SQLite database at dsn, pulling in the
// pure-Go modernc.org/sqlite driver so callers need no cgo toolchain. A
// filesystem path gives a durable database; ":memory:" gives a throwaway
// one, with the usual caveat that each pooled connection sees its own
// in-memory database.
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }
