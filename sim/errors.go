// Package sim wires the graph, sensor, agent, recorder, visual, metrics and
// logging subsystems into a single running simulation (§2, §5, §10). It is
// the only package that imports every subsystem; every cross-reference
// below it goes through the narrow consumer-side interfaces those packages
// declare themselves, never a direct import of sim.
package sim

import "errors"

// ErrNoGraph is returned by NewContext when no graph was supplied via
// WithGraph.
var ErrNoGraph = errors.New("sim: no graph configured")

// ErrTerminated is returned by Tick once the context has been terminated.
var ErrTerminated = errors.New("sim: context terminated")
