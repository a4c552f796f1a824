package store

import (
	"context"

	"github.com/gammsgo/gammsgo/graphstore"
)

// SaveToPath saves g to a SQLite database at path, creating it if
// necessary. This is the bare-path convenience §2 promises: graphstore
// itself only knows the Backend interface, so the SQLite default lives
// here rather than as a method on graphstore.Graph, which cannot import
// store without an import cycle (store already imports graphstore).
func SaveToPath(ctx context.Context, g *graphstore.Graph, path string) error {
	backend, err := NewSQLiteGraphStore(path)
	if err != nil {
		return err
	}
	defer backend.Close()
	return g.Save(ctx, backend)
}

// LoadFromPath loads g from a SQLite database at path, the Load-side
// counterpart to SaveToPath.
func LoadFromPath(ctx context.Context, g *graphstore.Graph, path string) error {
	backend, err := NewSQLiteGraphStore(path)
	if err != nil {
		return err
	}
	defer backend.Close()
	return g.Load(ctx, backend)
}
