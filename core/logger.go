package core

import (
	"github.com/hashicorp/go-hclog"

	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/sim"
)

// PipelineLogger is a hook that logs one line per cycle at debug level, and
// every squash.
type PipelineLogger struct {
	logger hclog.Logger
}

// NewPipelineLogger creates a PipelineLogger.
func NewPipelineLogger(logger hclog.Logger) *PipelineLogger {
	return &PipelineLogger{logger: logger}
}

// Func logs the cycle.
func (h *PipelineLogger) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosCycleEnd:
		h.logCycle(ctx)
	case HookPosSquash:
		s := ctx.Item.(Squash)
		h.logger.Debug("squash",
			"cycle", s.Cycle,
			"reason", s.Reason,
			"fetched", isa.Disassemble(s.Fetched),
			"decoded", isa.Disassemble(s.Decoded))
	}
}

func (h *PipelineLogger) logCycle(ctx sim.HookCtx) {
	if !h.logger.IsDebug() {
		return
	}

	s := ctx.Item.(Snapshot)
	w := ctx.Detail.(Wires)

	h.logger.Debug("cycle",
		"core", s.Name,
		"cycle", s.Cycle-1,
		"pc", hex(s.PC),
		"if", isa.Disassemble(w.Fetch.Instr.Uint32()),
		"id", isa.Disassemble(w.Decode.Instr.Uint32()),
		"ex_alu", hex(w.Execute.ALUResult.Uint32()),
		"pc_src", w.Execute.PCSource.String(),
		"wb", w.Writeback.Dest.String(),
		"wb_data", hex(w.Writeback.Data.Uint32()),
		"regs", s.Registers)
}

func hex(v uint32) hclog.Hex {
	return hclog.Hex(v)
}
