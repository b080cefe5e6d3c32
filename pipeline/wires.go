// Package pipeline implements the stage registers of the five-stage pipeline
// and the combinational logic in front of each of them.
//
// A stage register is a bundle of 32-bit registers. Its Step method computes
// the next-stage values from the committed outputs of the upstream stage, and
// feeds them into its registers for one clock phase. Step must be called with
// logic.Settle and then with logic.Commit every cycle.
//
// Wires between stages are value structs returned by Step. They are never
// shared mutable state.
package pipeline

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/memory"
	"github.com/sarchlab/gatepipe/register"
)

// PCSource is the 2-bit next-PC select. Element 0 selects the branch target
// and element 1 selects the jump target. Both set select the exception
// vector.
type PCSource [2]bool

// The next-PC selections.
var (
	PCSequential = PCSource{false, false}
	PCBranch     = PCSource{true, false}
	PCJump       = PCSource{false, true}
	PCException  = PCSource{true, true}
)

func (s PCSource) String() string {
	switch s {
	case PCSequential:
		return "seq"
	case PCBranch:
		return "branch"
	case PCJump:
		return "jump"
	default:
		return "exception"
	}
}

// FetchTargets are the next-PC candidates fed back into the fetch stage.
type FetchTargets struct {
	Source    PCSource
	Branch    logic.Word
	Jump      logic.Word
	Exception logic.Word
}

// FetchControl holds the write controls of the PC and of IF/ID.
type FetchControl struct {
	PCWrite   bool
	IFIDWrite bool
	IFIDFlush bool
}

// DecodeControl holds the write controls of ID/EX.
type DecodeControl struct {
	IDEXWrite bool
	IDEXFlush bool
}

// FetchWires are the combinational outputs of the fetch stage.
type FetchWires struct {
	PC      logic.Word
	Instr   logic.Word
	PCPlus4 logic.Word
	NextPC  logic.Word
}

// DecodeWires are the combinational outputs of the decode stage.
type DecodeWires struct {
	Instr      logic.Word
	Signals    decoder.Signals
	ReadData1  logic.Word
	ReadData2  logic.Word
	ImmExt     logic.Word
	JumpTarget logic.Word
	Rs, Rt, Rd register.Index
}

// ExecuteWires are the combinational outputs of the execute stage.
type ExecuteWires struct {
	ALUResult    logic.Word
	CarryOut     bool
	BranchTarget logic.Word
	JumpTarget   logic.Word
	Zero         bool
	PCSource     PCSource
	Dest         register.Index
}

// Targets returns the fetch feedback of the execute stage.
func (w ExecuteWires) Targets(exceptionVector logic.Word) FetchTargets {
	return FetchTargets{
		Source:    w.PCSource,
		Branch:    w.BranchTarget,
		Jump:      w.JumpTarget,
		Exception: exceptionVector,
	}
}

// MemoryWires are the combinational outputs of the memory stage. A fault is
// raised only when the instruction actually loads or stores.
type MemoryWires struct {
	ReadData   logic.Word
	ReadFault  bool
	WriteFault bool
	ReadErr    error
	WriteErr   error
}

// WritebackWires are the combinational outputs of the writeback stage.
type WritebackWires struct {
	Data    logic.Word
	Dest    register.Index
	Enables [register.NumRegisters]bool
}

// A Writer describes an in-flight instruction that will write a register.
type Writer struct {
	RegWrite bool
	Dest     register.Index
}

// InstructionSource is the read port of the instruction memory.
type InstructionSource interface {
	Read(addr logic.Word) logic.Word
}

// DataPort is the read/write port of the data memory.
type DataPort interface {
	Read(addr logic.Word) (logic.Word, error)
	Write(
		addr, data logic.Word,
		be memory.ByteEnable,
		we bool,
		clk logic.Phase,
	) error
}

// RegisterFile is the port of the register file.
type RegisterFile interface {
	Read(a1, a2 register.Index) (logic.Word, logic.Word)
	Step(we [register.NumRegisters]bool, d logic.Word, clk logic.Phase)
}

// stageControl is the tagged mux in front of every stage register. A flush
// loads zero, a cleared write holds, and otherwise the new value is loaded.
type stageControl struct {
	write bool
	flush bool
}

func (c stageControl) load() bool {
	return logic.Or(c.write, c.flush)
}

func (c stageControl) step(
	r *register.Reg32,
	v logic.Word,
	clk logic.Phase,
) logic.Word {
	return r.Step(c.load(), logic.MuxWord(v, logic.Word{}, c.flush), clk)
}

// stepKeep loads v even on a flush.
func (c stageControl) stepKeep(
	r *register.Reg32,
	v logic.Word,
	clk logic.Phase,
) logic.Word {
	return r.Step(c.load(), v, clk)
}

var four = logic.WordFromUint32(4)
