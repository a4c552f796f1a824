// Package sensor implements the sensing subsystem: Neighbor, Map, Range,
// Arc, Agent, AgentRange, AgentArc and user-defined Custom sensor variants,
// plus the orientation and field-of-view math they share.
package sensor

import "errors"

// ErrDuplicateSensor is returned when a sensor id is already registered.
var ErrDuplicateSensor = errors.New("sensor: duplicate sensor id")

// ErrUnknownType is returned when create_sensor is asked to build a variant
// the engine doesn't recognize.
var ErrUnknownType = errors.New("sensor: unknown sensor type")

// ErrNotFound is returned by GetSensor on a miss.
var ErrNotFound = errors.New("sensor: not found")

// ErrDuplicateCustomTag is returned when Custom registers a tag that is
// already taken.
var ErrDuplicateCustomTag = errors.New("sensor: duplicate custom tag")
