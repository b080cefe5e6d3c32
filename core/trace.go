package core

import (
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/pipeline"
	"github.com/sarchlab/gatepipe/sim"
	"github.com/sarchlab/gatepipe/tracing"
)

// InstDetail is the detail of an instruction task.
type InstDetail struct {
	PC   uint32 `json:"pc"`
	Word uint32 `json:"word"`
}

// stageTags mirror the stage registers with the task ID of the instruction
// each of them holds. Bubbles and NOP words have no ID.
type stageTags struct {
	ifid, idex, exmem, memwb string
}

// traceInstructions follows the instructions through the cycle that just
// committed. It applies the same hold and flush decisions as the stage
// registers.
func (c *Core) traceInstructions(w Wires) {
	old := c.tags
	h := w.Hazard

	if old.memwb != "" {
		c.taskStep(old.memwb, "WB")
		tracing.EndTask(old.memwb, c)
	}

	next := stageTags{memwb: old.exmem, exmem: old.idex}
	c.taskStep(next.memwb, "MEM")
	c.taskStep(next.exmem, "EX")

	switch {
	case h.IDEXFlush && !h.Stall:
		c.squashTask(old.ifid)
	case h.Stall:
		c.taskStep(old.ifid, "stall")
		next.ifid = old.ifid
	default:
		next.idex = old.ifid
		c.taskStep(next.idex, "ID")
	}

	switch {
	case h.IFIDFlush:
		c.squashTask(c.startTask(w.Fetch))
	case h.IFIDWrite:
		next.ifid = c.startTask(w.Fetch)
	}

	c.tags = next
}

func (c *Core) startTask(f pipeline.FetchWires) string {
	if f.Instr.IsZero() {
		return ""
	}

	id := sim.GetIDGenerator().Generate()
	word := f.Instr.Uint32()
	tracing.StartTask(id, "", c, "inst", isa.Disassemble(word),
		InstDetail{PC: f.PC.Uint32(), Word: word})
	c.taskStep(id, "IF")

	return id
}

func (c *Core) taskStep(id, what string) {
	if id == "" {
		return
	}

	tracing.AddTaskStep(id, c, what)
}

func (c *Core) squashTask(id string) {
	if id == "" {
		return
	}

	tracing.AddTaskStep(id, c, "squashed")
	tracing.EndTask(id, c)
}
