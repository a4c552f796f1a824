package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/gammsgo/gammsgo/agent"
)

// Simulation drives a Context through turns.
type Simulation struct {
	*Context
	Policy agent.StrategyPolicy // applied to every agent's gather phase
}

// NewSimulation wraps ctx in a turn driver. The zero StrategyPolicy (no
// timeout, one attempt) reproduces spec §4.3's unconditional
// get_state -> strategy -> set_state exactly; set Policy for retry/timeout
// behavior.
func NewSimulation(ctx *Context) *Simulation {
	return &Simulation{Context: ctx}
}

// Tick runs one full turn: a gather phase (GetState + strategy, read-only
// w.r.t. shared graph/agent state per §5) over every agent in
// Agent.CreateIter() order, optionally with bounded worker-pool
// concurrency when Context was built with WithGatherConcurrency(n>1);
// then a strictly sequential commit phase (SetState, which emits every
// AGENT_CURRENT_NODE/AGENT_PREV_NODE event) in the same order; then
// Visual.Simulate(ctx). Concurrency in the gather phase never reorders
// commits or their emitted events, so determinism is unaffected by it.
//
// Returns ErrTerminated without doing any work if the Context has been
// terminated.
func (s *Simulation) Tick(ctx context.Context) error {
	if s.IsTerminated() {
		return ErrTerminated
	}

	agents := s.Agent.CreateIter()
	gatherErrs := s.gather(ctx, agents)

	for i, a := range agents {
		if gatherErrs[i] != nil {
			continue
		}
		if err := a.SetState(); err != nil {
			gatherErrs[i] = fmt.Errorf("commit agent %s: %w", a.Name, err)
		}
	}

	if s.Metrics != nil {
		s.Metrics.TickCompleted()
		s.Metrics.SetAgentsActive(len(agents))
	}

	for _, err := range gatherErrs {
		if err != nil {
			return err
		}
	}

	return s.Visual.Simulate(ctx)
}

// gather runs GetState+strategy for every agent, in CreateIter order, with
// at most gatherConcurrency running at once. Results land in a
// position-indexed slice so the commit phase can stay in CreateIter order
// regardless of which gather goroutine finished first.
func (s *Simulation) gather(ctx context.Context, agents []*agent.Agent) []error {
	errs := make([]error, len(agents))
	limit := s.gatherConcurrency
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	done := make(chan struct{}, len(agents))
	for i, a := range agents {
		i, a := i, a
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- struct{}{} }()
			start := time.Now()
			err := a.Gather(ctx, s.Policy)
			if s.Metrics != nil {
				s.Metrics.RecordStrategyLatency(time.Since(start))
			}
			if err != nil {
				errs[i] = fmt.Errorf("gather agent %s: %w", a.Name, err)
			}
		}()
	}
	for range agents {
		<-done
	}
	return errs
}
