// Package store persists node frames in SQLite and answers nearest-node
// queries against the stored coordinate values. It includes:
//   - Store interface and SQLiteStore: durable storage for frames
//   - Schema helpers to create the frame and row tables
//   - Row value encoding (BLOB) for lossless float64 round-trips
package store
