// Package graphstore implements the spatial graph store: geo-located nodes
// and directed, polyline-carrying edges, with neighbor queries and pluggable
// persistence.
package graphstore

import "errors"

// Sentinel errors returned by Graph operations. Callers should match with
// errors.Is; the concrete error returned may wrap one of these with extra
// context via fmt.Errorf("%w: ...").
var (
	// ErrNotFound is returned when a node or edge id does not resolve.
	ErrNotFound = errors.New("graphstore: not found")

	// ErrConflict is returned when a node or edge id already exists.
	ErrConflict = errors.New("graphstore: already exists")

	// ErrInvalid is returned for malformed input: empty or degenerate
	// linestrings. Edge endpoints that don't resolve are ErrNotFound.
	ErrInvalid = errors.New("graphstore: invalid input")
)
