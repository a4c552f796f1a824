// Package visual defines the rendering contract the simulation core depends
// on but never implements: graph/agent/sensor visual hints, user-supplied
// artists, and the render/input loop itself are all backend concerns.
package visual

import "errors"

// ErrNoArtist is returned by RemoveArtist on a miss.
var ErrNoArtist = errors.New("visual: artist not found")
