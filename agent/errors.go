// Package agent implements the agent runtime (§4.3): the per-agent turn
// contract (get_state/set_state/step), the agent engine (create/get/delete/
// iteration in insertion order), and the strategy invocation policy.
package agent

import "errors"

// ErrDuplicateAgent is returned by CreateAgent when name is already taken.
var ErrDuplicateAgent = errors.New("agent: duplicate agent name")

// ErrNotFound is returned by GetAgent on a miss.
var ErrNotFound = errors.New("agent: not found")

// ErrNoStrategy is returned by Step when no strategy has been registered.
var ErrNoStrategy = errors.New("agent: no strategy registered")

// ErrNoState is returned by SetState when called before GetState.
var ErrNoState = errors.New("agent: set_state called before get_state")

// ErrInvalidAction is returned by SetState when the state's action field is
// missing or not a valid node id.
var ErrInvalidAction = errors.New("agent: invalid action")
