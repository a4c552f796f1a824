package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gammsgo/gammsgo/graphstore"
)

// SQLiteGraphStore persists a graph snapshot to a single-file SQLite
// database, mirroring the node/edge table shape of the original Python
// implementation's sqlite-backed MemoryEngine (nodes(id,x,y),
// edges(id,source,target,length,geom)) — geometry stored as a JSON-encoded
// point array in a TEXT column since SQLite has no native array type.
//
// Designed for:
//   - Local development and single-process simulations needing a durable
//     graph snapshot across runs
//   - Prototyping before promoting to MySQLGraphStore for shared access
type SQLiteGraphStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteGraphStore opens (creating if necessary) a SQLite database at
// path and ensures the node/edge tables exist.
func NewSQLiteGraphStore(path string) (*SQLiteGraphStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite graph store: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &SQLiteGraphStore{db: db, path: path}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteGraphStore) createTables(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY,
			x REAL NOT NULL,
			y REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY,
			source INTEGER NOT NULL,
			target INTEGER NOT NULL,
			length REAL NOT NULL,
			geom TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create graph store schema: %w", err)
		}
	}
	return nil
}

// SaveGraph replaces the persisted snapshot with nodes/edges, inside one
// transaction so a crash mid-write never leaves a half-written graph.
func (s *SQLiteGraphStore) SaveGraph(ctx context.Context, nodes []graphstore.Node, edges []graphstore.Edge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM nodes"); err != nil {
		return fmt.Errorf("clear nodes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM edges"); err != nil {
		return fmt.Errorf("clear edges: %w", err)
	}
	for _, n := range nodes {
		if _, err := tx.ExecContext(ctx, "INSERT INTO nodes(id,x,y) VALUES(?,?,?)", n.ID, n.X, n.Y); err != nil {
			return fmt.Errorf("insert node %d: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		geom, err := json.Marshal(e.Linestring)
		if err != nil {
			return fmt.Errorf("marshal geometry for edge %d: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO edges(id,source,target,length,geom) VALUES(?,?,?,?,?)",
			e.ID, e.Source, e.Target, e.Length, string(geom)); err != nil {
			return fmt.Errorf("insert edge %d: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// LoadGraph reads the persisted snapshot back.
func (s *SQLiteGraphStore) LoadGraph(ctx context.Context) ([]graphstore.Node, []graphstore.Edge, error) {
	nodeRows, err := s.db.QueryContext(ctx, "SELECT id, x, y FROM nodes")
	if err != nil {
		return nil, nil, fmt.Errorf("query nodes: %w", err)
	}
	defer nodeRows.Close()

	var nodes []graphstore.Node
	for nodeRows.Next() {
		var n graphstore.Node
		if err := nodeRows.Scan(&n.ID, &n.X, &n.Y); err != nil {
			return nil, nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, nil, err
	}

	edgeRows, err := s.db.QueryContext(ctx, "SELECT id, source, target, length, geom FROM edges")
	if err != nil {
		return nil, nil, fmt.Errorf("query edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []graphstore.Edge
	for edgeRows.Next() {
		var e graphstore.Edge
		var geom string
		if err := edgeRows.Scan(&e.ID, &e.Source, &e.Target, &e.Length, &geom); err != nil {
			return nil, nil, fmt.Errorf("scan edge: %w", err)
		}
		if err := json.Unmarshal([]byte(geom), &e.Linestring); err != nil {
			return nil, nil, fmt.Errorf("unmarshal geometry for edge %d: %w", e.ID, err)
		}
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, nil, err
	}

	if len(nodes) == 0 && len(edges) == 0 {
		return nil, nil, ErrNotFound
	}
	return nodes, edges, nil
}

// Close releases the underlying database connection.
func (s *SQLiteGraphStore) Close() error {
	return s.db.Close()
}
