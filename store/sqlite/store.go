// Package sqlite stores models in a SQLite database.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/store"
)

//go:embed sql/models.sql
var schema string

// Store keeps models as rows of the models table.
type Store struct {
	pool *sqlitex.Pool
}

var _ store.Store = (*Store)(nil)

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", path), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening model database %s: %w", path, err)
	}

	s := &Store{pool: pool}
	if err := s.createSchema(context.Background()); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes every connection.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Save stores m under name, replacing any previous model.
func (s *Store) Save(ctx context.Context, name string, m *model.Model) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	blob, err := model.Marshal(m)
	if err != nil {
		return err
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO models (name, data, saved_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`, &sqlitex.ExecOptions{
		Args: []any{name, blob, time.Now().Unix()},
	})
	if err != nil {
		return fmt.Errorf("saving model %s: %w", name, err)
	}
	return nil
}

// Load returns the model stored under name.
func (s *Store) Load(ctx context.Context, name string) (*model.Model, error) {
	if err := store.CheckName(name); err != nil {
		return nil, err
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var (
		blob  []byte
		found bool
	)
	err = sqlitex.Execute(conn, "SELECT data FROM models WHERE name = ?", &sqlitex.ExecOptions{
		Args: []any{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			blob = make([]byte, stmt.ColumnLen(0))
			stmt.ColumnBytes(0, blob)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}

	m, err := model.Unmarshal(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding model %s: %w", name, err)
	}
	return m, nil
}

// List returns the stored model names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var names []string
	err = sqlitex.Execute(conn, "SELECT name FROM models ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
