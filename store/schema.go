package store

import (
	"database/sql"
)

const framesSchema = `
CREATE TABLE IF NOT EXISTS node_frames (
    name    TEXT PRIMARY KEY,
    columns TEXT NOT NULL,
    coords  TEXT NOT NULL,
    units   TEXT NOT NULL
);
`

const rowsSchema = `
CREATE TABLE IF NOT EXISTS node_rows (
    frame       TEXT NOT NULL,
    idx         INTEGER NOT NULL,
    vals        BLOB,
    connections TEXT NOT NULL,
    PRIMARY KEY(frame, idx)
);
`

// EnsureSchema creates the frame and row tables in the provided database if
// they do not already exist. Frame metadata (column order, coordinate flags,
// units) lives in node_frames; node_rows holds one row per node with its
// values encoded as a BLOB and its adjacency list as JSON.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(framesSchema); err != nil {
		return err
	}
	_, err := db.Exec(rowsSchema)
	return err
}
