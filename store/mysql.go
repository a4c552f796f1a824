package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/gammsgo/gammsgo/graphstore"
)

// MySQLGraphStore persists a graph snapshot to a shared MySQL database,
// for teams running several simulation workers against one graph. Schema
// matches SQLiteGraphStore's (geometry as a JSON text column) so the two
// backends are interchangeable.
type MySQLGraphStore struct {
	db *sql.DB
}

// NewMySQLGraphStore opens a connection using dsn (same DSN shape accepted
// by github.com/go-sql-driver/mysql, e.g. "user:pass@tcp(host:3306)/dbname")
// and ensures the node/edge tables exist.
func NewMySQLGraphStore(ctx context.Context, dsn string) (*MySQLGraphStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql graph store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql graph store: %w", err)
	}

	s := &MySQLGraphStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLGraphStore) createTables(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS gammsgo_nodes (
			id BIGINT PRIMARY KEY,
			x DOUBLE NOT NULL,
			y DOUBLE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS gammsgo_edges (
			id BIGINT PRIMARY KEY,
			source BIGINT NOT NULL,
			target BIGINT NOT NULL,
			length DOUBLE NOT NULL,
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

// SaveGraph replaces the persisted snapshot with nodes/edges inside one
// transaction.
func (s *MySQLGraphStore) SaveGraph(ctx context.Context, nodes []graphstore.Node, edges []graphstore.Edge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM gammsgo_nodes"); err != nil {
		return fmt.Errorf("clear nodes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM gammsgo_edges"); err != nil {
		return fmt.Errorf("clear edges: %w", err)
	}
	for _, n := range nodes {
		if _, err := tx.ExecContext(ctx, "INSERT INTO gammsgo_nodes(id,x,y) VALUES(?,?,?)", n.ID, n.X, n.Y); err != nil {
			return fmt.Errorf("insert node %d: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		geom, err := json.Marshal(e.Linestring)
		if err != nil {
			return fmt.Errorf("marshal geometry for edge %d: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO gammsgo_edges(id,source,target,length,geom) VALUES(?,?,?,?,?)",
			e.ID, e.Source, e.Target, e.Length, string(geom)); err != nil {
			return fmt.Errorf("insert edge %d: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// LoadGraph reads the persisted snapshot back.
func (s *MySQLGraphStore) LoadGraph(ctx context.Context) ([]graphstore.Node, []graphstore.Edge, error) {
	nodeRows, err := s.db.QueryContext(ctx, "SELECT id, x, y FROM gammsgo_nodes")
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

	edgeRows, err := s.db.QueryContext(ctx, "SELECT id, source, target, length, geom FROM gammsgo_edges")
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

// Close releases the underlying database connection pool.
func (s *MySQLGraphStore) Close() error {
	return s.db.Close()
}
