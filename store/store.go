package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gota/gota/series"

	"github.com/Badg/phynum/internal/bruteforce"
	"github.com/Badg/phynum/node"
)

// ErrFrameNotFound indicates no stored frame under the requested name.
var ErrFrameNotFound = errors.New("store: frame not found")

// Store defines the frame persistence API. Implementations in this module
// use SQLite for durable storage and a linear-scan index for nearest
// queries over stored coordinates.
type Store interface {
	// SaveFrame stores the frame under the given name, replacing any prior
	// frame stored under that name.
	SaveFrame(ctx context.Context, name string, f *node.Frame) error

	// LoadFrame reconstructs a stored frame: columns, coordinate flags,
	// units, adjacency lists and row values.
	LoadFrame(ctx context.Context, name string) (*node.Frame, error)

	// RemoveFrame deletes the named frame and its rows.
	RemoveFrame(ctx context.Context, name string) error

	// NearestStored returns the row indices of the k stored nodes closest to
	// the query over the frame's coordinate columns, with their distances in
	// ascending order. The query length must match the coordinate count.
	NearestStored(ctx context.Context, name string, query []float64, k int) ([]int, []float64, error)
}

// SQLiteStore is a Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed Store, ensuring the frame schema
// exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// frameMeta is the JSON shape of the node_frames metadata columns.
type frameMeta struct {
	columns []string
	coords  map[string]bool
	units   map[string]string
}

// SaveFrame stores the frame under the given name inside a single
// transaction, replacing any prior frame of that name. Only all-numeric
// frames can be persisted; a frame with a non-numeric column is rejected.
func (s *SQLiteStore) SaveFrame(ctx context.Context, name string, f *node.Frame) error {
	if name == "" {
		return fmt.Errorf("store: SaveFrame called with empty name")
	}
	if f == nil {
		return fmt.Errorf("store: SaveFrame called with nil frame")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	df := f.Data()
	columns := f.Columns()
	types := df.Types()
	cols := make([][]float64, len(columns))
	for j, col := range columns {
		switch types[j] {
		case series.Float, series.Int:
		default:
			return fmt.Errorf("store: frame column %q is not numeric", col)
		}
		cols[j] = df.Col(col).Float()
	}

	colsJSON, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	coordsJSON, err := json.Marshal(f.Coords())
	if err != nil {
		return err
	}
	unitsJSON, err := json.Marshal(f.Units())
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM node_rows WHERE frame = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO node_frames(name, columns, coords, units) VALUES(?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET columns = excluded.columns,
		 coords = excluded.coords, units = excluded.units`,
		name, string(colsJSON), string(coordsJSON), string(unitsJSON)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO node_rows(frame, idx, vals, connections) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	row := make([]float64, len(columns))
	for i := 0; i < f.NumRows(); i++ {
		for j := range cols {
			row[j] = cols[j][i]
		}
		blob, err := EncodeValues(row)
		if err != nil {
			return err
		}
		conns, err := f.Connections(i)
		if err != nil {
			return err
		}
		if conns == nil {
			conns = []int{}
		}
		connsJSON, err := json.Marshal(conns)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, name, i, blob, string(connsJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadFrame reconstructs the named frame from the database.
func (s *SQLiteStore) LoadFrame(ctx context.Context, name string) (*node.Frame, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	meta, err := s.loadMeta(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT vals, connections FROM node_rows WHERE frame = ? ORDER BY idx`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make([][]float64, len(meta.columns))
	var conns [][]int
	for rows.Next() {
		var blob []byte
		var connsJSON string
		if err := rows.Scan(&blob, &connsJSON); err != nil {
			return nil, err
		}
		vals, err := DecodeValues(blob)
		if err != nil {
			return nil, err
		}
		if len(vals) != len(meta.columns) {
			return nil, fmt.Errorf("store: frame %q row has %d values, want %d", name, len(vals), len(meta.columns))
		}
		for j, v := range vals {
			cols[j] = append(cols[j], v)
		}
		var targets []int
		if err := json.Unmarshal([]byte(connsJSON), &targets); err != nil {
			return nil, fmt.Errorf("store: frame %q connections: %w", name, err)
		}
		conns = append(conns, targets)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	f, err := node.FromColumns(meta.columns, cols, node.CoordFlags(meta.coords), node.WithUnits(meta.units))
	if err != nil {
		return nil, fmt.Errorf("store: rebuilding frame %q: %w", name, err)
	}
	for i, targets := range conns {
		if len(targets) == 0 {
			continue
		}
		if err := f.Connect(i, targets...); err != nil {
			return nil, fmt.Errorf("store: rebuilding frame %q: %w", name, err)
		}
	}
	return f, nil
}

// RemoveFrame deletes the named frame and its rows.
func (s *SQLiteStore) RemoveFrame(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("store: RemoveFrame called with empty name")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM node_rows WHERE frame = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM node_frames WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// NearestStored answers a top-k query over the stored frame's coordinate
// columns, in coordinate column order.
func (s *SQLiteStore) NearestStored(ctx context.Context, name string, query []float64, k int) ([]int, []float64, error) {
	f, err := s.LoadFrame(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	coordNames := f.CoordNames()
	if len(query) != len(coordNames) {
		return nil, nil, fmt.Errorf("store: query has %d values but frame %q has %d coordinates", len(query), name, len(coordNames))
	}

	df := f.Data()
	coordCols := make([][]float64, len(coordNames))
	for j, col := range coordNames {
		coordCols[j] = df.Col(col).Float()
	}

	n := f.NumRows()
	ids := make([]int, n)
	vectors := make([][]float32, n)
	for i := 0; i < n; i++ {
		ids[i] = i
		vec := make([]float32, len(coordCols))
		for j := range coordCols {
			vec[j] = float32(coordCols[j][i])
		}
		vectors[i] = vec
	}

	var idx bruteforce.Index
	if err := idx.Build(ids, vectors); err != nil {
		return nil, nil, err
	}
	q := make([]float32, len(query))
	for i, v := range query {
		q[i] = float32(v)
	}
	return idx.Query(q, k)
}

func (s *SQLiteStore) loadMeta(ctx context.Context, name string) (frameMeta, error) {
	var colsJSON, coordsJSON, unitsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT columns, coords, units FROM node_frames WHERE name = ?`, name).
		Scan(&colsJSON, &coordsJSON, &unitsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return frameMeta{}, fmt.Errorf("%w: %q", ErrFrameNotFound, name)
	}
	if err != nil {
		return frameMeta{}, err
	}
	var meta frameMeta
	if err := json.Unmarshal([]byte(colsJSON), &meta.columns); err != nil {
		return frameMeta{}, fmt.Errorf("store: frame %q columns: %w", name, err)
	}
	if err := json.Unmarshal([]byte(coordsJSON), &meta.coords); err != nil {
		return frameMeta{}, fmt.Errorf("store: frame %q coords: %w", name, err)
	}
	if err := json.Unmarshal([]byte(unitsJSON), &meta.units); err != nil {
		return frameMeta{}, fmt.Errorf("store: frame %q units: %w", name, err)
	}
	return meta, nil
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
