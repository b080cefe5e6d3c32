package sim

import (
	"reflect"

	"github.com/hashicorp/go-hclog"
)

// EventLogger is a hook that logs every event before it is handled.
type EventLogger struct {
	logger hclog.Logger
}

// NewEventLogger creates an EventLogger that writes at trace level.
func NewEventLogger(logger hclog.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Func logs the event.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	args := []interface{}{
		"time", float64(evt.Time()),
		"event", reflect.TypeOf(evt).String(),
	}

	if comp, ok := evt.Handler().(Named); ok {
		args = append(args, "handler", comp.Name())
	}

	h.logger.Trace("event", args...)
}
