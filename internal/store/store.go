// Package store keeps named drawings in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/shape"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when no drawing has the requested name.
var ErrNotFound = errors.New("drawing not found")

// ErrEmptyName is returned when a drawing is stored without a name.
var ErrEmptyName = errors.New("drawing name is empty")

// Entry describes a stored drawing.
type Entry struct {
	Name      string `json:"name"`
	Shapes    int    `json:"shapes"`
	UpdatedAt string `json:"updatedAt"`
}

// Store is a SQLite-backed collection of drawings.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return s, nil
}

// OpenSQLite opens the sqlite database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return fmt.Errorf("read migration: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

// normalizeName trims surrounding whitespace and rejects empty names.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Put stores shapes under name, replacing any previous drawing.
func (s *Store) Put(ctx context.Context, name string, shapes []shape.Shape) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	body, err := document.Encode(shapes)
	if err != nil {
		return err
	}
	n := 0
	for _, sh := range shapes {
		if sh != nil && !sh.IsPreview() {
			n++
		}
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO drawings (name, body, shapes)
        VALUES (?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            body = excluded.body,
            shapes = excluded.shapes,
            updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
    `, name, string(body), n)
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Get loads the drawing stored under name. Records of unknown type are
// dropped and counted.
func (s *Store) Get(ctx context.Context, name string) ([]shape.Shape, int, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, 0, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT body FROM drawings WHERE name = ?`, name)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, 0, err
	}
	return document.Decode([]byte(body))
}

// List returns every stored drawing ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, shapes, updated_at FROM drawings ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Shapes, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the drawing stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM drawings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}
