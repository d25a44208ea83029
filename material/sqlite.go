package material

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteCatalog persists materials in a single SQLite table. Impurities are
// stored as a JSON blob next to the scalar columns.
type SQLiteCatalog struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path and seeds it with the
// reference materials when the table is empty. An empty path or ":memory:"
// uses an in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteCatalog, error) {
	dsn := path
	if path == "" || path == ":memory:" {
		dsn = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// an in-memory database lives as long as its single connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS materials (
		name TEXT PRIMARY KEY,
		density REAL NOT NULL,
		nominal_activity REAL NOT NULL DEFAULT 0,
		impurities BLOB
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create materials table: %w", err)
	}
	s := &SQLiteCatalog{db: db, path: dsn}
	if err := s.seed(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteCatalog) seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n); err != nil {
		return fmt.Errorf("count materials: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, m := range Reference() {
		if err := s.Put(ctx, m); err != nil {
			return fmt.Errorf("seed %s: %w", m.Name, err)
		}
	}

	return nil
}

// Put inserts or replaces m.
func (s *SQLiteCatalog) Put(ctx context.Context, m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(m.Impurities)
	if err != nil {
		return fmt.Errorf("encode impurities: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO materials(name, density, nominal_activity, impurities)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET density=excluded.density,
			nominal_activity=excluded.nominal_activity, impurities=excluded.impurities`,
		m.Name, m.Density, m.NominalActivity, payload)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", m.Name, err)
	}

	return nil
}

// Get returns the material called name.
func (s *SQLiteCatalog) Get(ctx context.Context, name string) (Material, error) {
	var (
		m       = Material{Name: name}
		payload []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT density, nominal_activity, impurities FROM materials WHERE name = ?`, name).
		Scan(&m.Density, &m.NominalActivity, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, fmt.Errorf("%q: %w", name, ErrMaterialNotFound)
	}
	if err != nil {
		return Material{}, fmt.Errorf("select %s: %w", name, err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &m.Impurities); err != nil {
			return Material{}, fmt.Errorf("decode impurities of %s: %w", name, err)
		}
	}

	return m, nil
}

// Density implements mass.DensityLookup.
func (s *SQLiteCatalog) Density(name string) (float64, error) {
	m, err := s.Get(context.Background(), name)
	if err != nil {
		return 0, err
	}

	return m.Density, nil
}

// Names returns all material names sorted.
func (s *SQLiteCatalog) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, n)
	}

	return out, rows.Err()
}

// Path returns the data source the catalog was opened with.
func (s *SQLiteCatalog) Path() string { return s.path }

// Close releases the database handle.
func (s *SQLiteCatalog) Close() error {
	return s.db.Close()
}
