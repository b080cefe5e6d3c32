package pipeline

import (
	"github.com/sarchlab/gatepipe/alu"
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

// EXMEM is the register between execute and memory.
type EXMEM struct {
	MemSignals  register.Reg32
	WBSignals   register.Reg32
	ALUResult   register.Reg32
	WriteData   register.Reg32
	WriteRegIdx register.Reg32

	// ResolveJumps lets a J instruction drive the jump select of the next-PC
	// mux. Without it, J decodes but never redirects the fetch.
	ResolveJumps bool
}

// EXMEMValue is the committed content of EX/MEM.
type EXMEMValue struct {
	Mem       decoder.MemSignals `json:"mem"`
	WB        decoder.WBSignals  `json:"wb"`
	ALUResult uint32             `json:"alu_result"`
	WriteData uint32             `json:"write_data"`
	WriteReg  int                `json:"write_reg"`
}

// Value returns the committed content.
func (r *EXMEM) Value() EXMEMValue {
	return EXMEMValue{
		Mem:       decoder.UnpackMem(r.MemSignals.Q()),
		WB:        decoder.UnpackWB(r.WBSignals.Q()),
		ALUResult: r.ALUResult.Q().Uint32(),
		WriteData: r.WriteData.Q().Uint32(),
		WriteReg:  register.IndexFromWord(r.WriteRegIdx.Q()).Int(),
	}
}

// PendingWrite returns the register the latched instruction will write.
func (r *EXMEM) PendingWrite() Writer {
	return Writer{
		RegWrite: decoder.UnpackWB(r.WBSignals.Q()).RegWrite,
		Dest:     register.IndexFromWord(r.WriteRegIdx.Q()),
	}
}

// Execute evaluates the execute stage on the committed content of ID/EX.
//
// The branch comparison runs on a dedicated subtractor for every instruction.
// Only branch AND zero AND NOT(flush) selects the branch target, so a flushed
// instruction can never redirect the fetch.
func (r *EXMEM) Execute(idex *IDEX, flush bool) ExecuteWires {
	s := decoder.Unpack(idex.Signals.Q())
	rd1 := idex.ReadData1.Q()
	rd2 := idex.ReadData2.Q()
	imm := idex.ImmExt.Q()

	operand := logic.MuxWord(rd2, imm, s.ALUSrc)
	result, carry := alu.Compute(rd1, operand, false, s.ALUOp)

	target, _ := alu.Compute(idex.PCPlus4.Q(), logic.ShiftLeft2(imm), false,
		alu.OpAdd)

	diff, _ := alu.Compute(rd1, rd2, false, alu.OpSub)
	zero := diff.IsZero()

	live := logic.Not(flush)
	source := PCSource{
		logic.And3(s.Branch, zero, live),
		logic.And3(s.Jump, r.ResolveJumps, live),
	}

	dest := logic.MuxWord(idex.RtIdx.Q(), idex.RdIdx.Q(), s.RegDst)

	return ExecuteWires{
		ALUResult:    result,
		CarryOut:     carry,
		BranchTarget: target,
		JumpTarget:   idex.JumpTarget.Q(),
		Zero:         zero,
		PCSource:     source,
		Dest:         register.IndexFromWord(dest),
	}
}

// Step runs the execute stage and feeds EX/MEM. EX/MEM loads every cycle; a
// flush loads a bubble.
func (r *EXMEM) Step(idex *IDEX, flush bool, clk logic.Phase) ExecuteWires {
	w := r.Execute(idex, flush)
	s := decoder.Unpack(idex.Signals.Q())

	sc := stageControl{write: true, flush: flush}
	sc.step(&r.MemSignals, s.Mem().Pack(), clk)
	sc.step(&r.WBSignals, s.WB().Pack(), clk)
	sc.step(&r.ALUResult, w.ALUResult, clk)
	sc.step(&r.WriteData, idex.ReadData2.Q(), clk)
	sc.step(&r.WriteRegIdx, w.Dest.Word(), clk)

	return w
}
