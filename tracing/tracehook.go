package tracing

import (
	"github.com/sarchlab/gatepipe/sim"
)

// CollectTrace lets the tracer collect the task reports of a domain.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	domain.AcceptHook(&traceHook{t: tracer})
}

// A traceHook forwards task reports to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer.
func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		h.t.StartTask(ctx.Item.(Task))
	case HookPosTaskStep:
		h.t.StepTask(ctx.Item.(Task))
	case HookPosTaskEnd:
		h.t.EndTask(ctx.Item.(Task))
	}
}
