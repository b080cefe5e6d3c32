// Package core assembles the stage registers, the register file and the
// memories into a five-stage pipeline and steps it one cycle at a time.
package core

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/memory"
	"github.com/sarchlab/gatepipe/pipeline"
	"github.com/sarchlab/gatepipe/register"
	"github.com/sarchlab/gatepipe/sim"
)

// Hook positions of a core.
var (
	// HookPosCycleStart triggers before a cycle. Item is the Snapshot before
	// the cycle.
	HookPosCycleStart = &sim.HookPos{Name: "CycleStart"}

	// HookPosCycleEnd triggers after a cycle. Item is the Snapshot after the
	// cycle and Detail holds the Wires of the cycle.
	HookPosCycleEnd = &sim.HookPos{Name: "CycleEnd"}

	// HookPosSquash triggers after a cycle in which a redirect flushed
	// IF/ID and ID/EX. Item is a Squash.
	HookPosSquash = &sim.HookPos{Name: "Squash"}
)

// Wires are the combinational outputs of all stages in one cycle, as settled
// before the commit.
type Wires struct {
	Fetch     pipeline.FetchWires
	Decode    pipeline.DecodeWires
	Execute   pipeline.ExecuteWires
	Memory    pipeline.MemoryWires
	Writeback pipeline.WritebackWires
	Hazard    pipeline.HazardOutput
}

// Squash describes the instructions cancelled by a redirect.
type Squash struct {
	// Cycle is the index of the cycle, counting from 0.
	Cycle  uint64
	Reason string

	// Fetched is the word read at the old PC, replaced by NOP in IF/ID.
	Fetched uint32

	// Decoded is the word that was in IF/ID, replaced by a bubble in ID/EX.
	Decoded uint32
}

// Core is a five-stage pipelined processor built from gates.
type Core struct {
	sim.HookableBase

	name   string
	config Config

	pc    register.Reg32
	rf    register.File
	im    *memory.InstructionMemory
	dm    *memory.DataMemory
	ifid  pipeline.IFID
	idex  pipeline.IDEX
	exmem pipeline.EXMEM
	memwb pipeline.MEMWB

	hazard          pipeline.HazardUnit
	exceptionVector logic.Word

	cycle       uint64
	wires       Wires
	readFaults  uint64
	writeFaults uint64

	tags stageTags
}

// Name returns the name of the core.
func (c *Core) Name() string {
	return c.name
}

// Config returns the configuration the core was built with.
func (c *Core) Config() Config {
	return c.config
}

// Tick runs both phases of one cycle and advances the cycle counter.
func (c *Core) Tick() {
	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosCycleStart,
			Item:   c.Snapshot(),
		})
	}

	var w Wires
	for _, clk := range logic.Phases {
		phase := c.evaluate(clk)
		if clk == logic.Settle {
			w = phase
		}
	}

	c.wires = w
	if w.Memory.ReadFault {
		c.readFaults++
	}

	if w.Memory.WriteFault {
		c.writeFaults++
	}

	c.cycle++

	if c.NumHooks() > 0 {
		c.traceInstructions(w)
		c.notifyCycleEnd(w)
	}
}

// evaluate runs every stage for one phase. Later stages go first so that each
// stage reads the committed outputs of the stage before it. The hazard inputs
// are taken before any register is stepped.
func (c *Core) evaluate(clk logic.Phase) Wires {
	hazardIn := pipeline.HazardInput{
		IFIDInstr: c.ifid.Instr.Q(),
		Writers: [3]pipeline.Writer{
			c.idex.PendingWrite(),
			c.exmem.PendingWrite(),
			c.memwb.PendingWrite(),
		},
	}

	var w Wires
	w.Writeback = pipeline.Writeback(&c.memwb, &c.rf, clk)
	w.Memory = c.memwb.Step(&c.exmem, c.dm, memory.FullWord, clk)
	w.Execute = c.exmem.Step(&c.idex, false, clk)

	hazardIn.PCSource = w.Execute.PCSource
	w.Hazard = c.hazard.Evaluate(hazardIn)

	w.Decode = c.idex.Step(&c.ifid, &c.rf, w.Hazard.Decode(), clk)
	w.Fetch = c.ifid.Step(&c.pc, c.im,
		w.Execute.Targets(c.exceptionVector), w.Hazard.Fetch(), clk)

	return w
}

func (c *Core) notifyCycleEnd(w Wires) {
	if w.Hazard.IFIDFlush {
		reason := "branch"
		if w.Hazard.JumpTaken {
			reason = "jump"
		}

		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosSquash,
			Item: Squash{
				Cycle:   c.cycle - 1,
				Reason:  reason,
				Fetched: w.Fetch.Instr.Uint32(),
				Decoded: w.Decode.Instr.Uint32(),
			},
		})
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosCycleEnd,
		Item:   c.Snapshot(),
		Detail: w,
	})
}

// CycleCount returns the number of completed cycles.
func (c *Core) CycleCount() uint64 {
	return c.cycle
}

// PC returns the committed program counter.
func (c *Core) PC() uint32 {
	return c.pc.Q().Uint32()
}

// Register returns the committed value of register i.
func (c *Core) Register(i int) uint32 {
	return c.rf.Register(i).Uint32()
}

// Registers returns the committed values of all registers.
func (c *Core) Registers() [register.NumRegisters]uint32 {
	var out [register.NumRegisters]uint32
	for i := range out {
		out[i] = c.Register(i)
	}

	return out
}

// IFID returns the committed content of IF/ID.
func (c *Core) IFID() pipeline.IFIDValue {
	return c.ifid.Value()
}

// IDEX returns the committed content of ID/EX.
func (c *Core) IDEX() pipeline.IDEXValue {
	return c.idex.Value()
}

// EXMEM returns the committed content of EX/MEM.
func (c *Core) EXMEM() pipeline.EXMEMValue {
	return c.exmem.Value()
}

// MEMWB returns the committed content of MEM/WB.
func (c *Core) MEMWB() pipeline.MEMWBValue {
	return c.memwb.Value()
}

// LastWires returns the settled wires of the last cycle.
func (c *Core) LastWires() Wires {
	return c.wires
}

// MemoryWord reads an aligned word of the data memory.
func (c *Core) MemoryWord(addr uint32) (uint32, error) {
	return c.dm.ReadWord(addr)
}

// DataMemorySize returns the size of the data memory in bytes.
func (c *Core) DataMemorySize() uint64 {
	return c.dm.Size()
}

// ProgramWords returns the program held by the instruction memory.
func (c *Core) ProgramWords() []uint32 {
	out := make([]uint32, c.im.Loaded())
	for i := range out {
		out[i] = c.im.Word(i)
	}

	return out
}

// PresetRegister writes register i through its own two-phase protocol. It
// must be called between cycles.
func (c *Core) PresetRegister(i int, v uint32) {
	c.rf.Preset(i, logic.WordFromUint32(v))
}

// PresetMemoryWord writes an aligned data memory word. It must be called
// between cycles.
func (c *Core) PresetMemoryWord(addr, v uint32) error {
	return c.dm.Preset(addr, v)
}

// Drained tells if the PC has passed the end of the program and no stage
// register holds a control bit that could change the architectural state.
func (c *Core) Drained() bool {
	pastEnd := uint64(c.PC()) >= uint64(c.im.Loaded())*memory.WordSize

	ifid := decoder.Decode(c.ifid.Instr.Q()).HasSideEffect()
	idex := decoder.Unpack(c.idex.Signals.Q()).HasSideEffect()
	exmem := logic.Or(
		decoder.UnpackMem(c.exmem.MemSignals.Q()).MemWrite,
		decoder.UnpackWB(c.exmem.WBSignals.Q()).RegWrite,
	)
	memwb := decoder.UnpackWB(c.memwb.WBSignals.Q()).RegWrite

	busy := logic.OrAll(ifid, idex, exmem, memwb)

	return logic.And(pastEnd, logic.Not(busy))
}
