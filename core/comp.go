package core

import (
	"github.com/sarchlab/gatepipe/sim"
)

// Comp drives a core from the engine. Every tick event runs one full cycle.
type Comp struct {
	*sim.TickingComponent

	Core *Core

	// MaxCycles stops ticking after this many cycles. Zero means no limit.
	MaxCycles uint64

	// UntilDrained stops ticking once the pipeline is drained.
	UntilDrained bool
}

// Tick runs one cycle. It returns false when the component should stop.
func (c *Comp) Tick() bool {
	if c.Done() {
		return false
	}

	c.Core.Tick()

	return !c.Done()
}

// Done tells if the component has reached its stop condition.
func (c *Comp) Done() bool {
	if c.MaxCycles > 0 && c.Core.CycleCount() >= c.MaxCycles {
		return true
	}

	return c.UntilDrained && c.Core.Drained()
}

// AcceptHook registers a hook on the core.
func (c *Comp) AcceptHook(hook sim.Hook) {
	c.Core.AcceptHook(hook)
}

// NumHooks returns the number of hooks registered on the core.
func (c *Comp) NumHooks() int {
	return c.Core.NumHooks()
}

// InvokeHook invokes the hooks of the core.
func (c *Comp) InvokeHook(ctx sim.HookCtx) {
	c.Core.InvokeHook(ctx)
}
