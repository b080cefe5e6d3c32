package pipeline

import (
	"github.com/sarchlab/gatepipe/alu"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

// IFID is the register between fetch and decode.
type IFID struct {
	Instr   register.Reg32
	PCPlus4 register.Reg32
}

// IFIDValue is the committed content of IF/ID.
type IFIDValue struct {
	Instr   uint32 `json:"instr"`
	PCPlus4 uint32 `json:"pc_plus4"`
}

// Value returns the committed content.
func (r *IFID) Value() IFIDValue {
	return IFIDValue{
		Instr:   r.Instr.Q().Uint32(),
		PCPlus4: r.PCPlus4.Q().Uint32(),
	}
}

// NextPC selects the next fetch address. The muxes are cascaded so that the
// exception vector wins over the jump target, which wins over the branch
// target.
func NextPC(pcPlus4 logic.Word, t FetchTargets) logic.Word {
	branch := logic.MuxWord(pcPlus4, t.Branch, t.Source[0])
	jump := logic.MuxWord(branch, t.Jump, t.Source[1])
	exception := logic.And(t.Source[0], t.Source[1])

	return logic.MuxWord(jump, t.Exception, exception)
}

// Step runs the fetch stage. It reads the instruction at PC, steps the PC with
// the selected next address, and latches the instruction and PC+4. A flush
// replaces the instruction with NOP but still latches PC+4.
func (r *IFID) Step(
	pc *register.Reg32,
	im InstructionSource,
	targets FetchTargets,
	ctl FetchControl,
	clk logic.Phase,
) FetchWires {
	pcValue := pc.Q()
	instr := im.Read(pcValue)
	pcPlus4, _ := alu.Compute(pcValue, four, false, alu.OpAdd)
	next := NextPC(pcPlus4, targets)

	pc.Step(ctl.PCWrite, next, clk)

	sc := stageControl{write: ctl.IFIDWrite, flush: ctl.IFIDFlush}
	sc.step(&r.Instr, instr, clk)
	sc.stepKeep(&r.PCPlus4, pcPlus4, clk)

	return FetchWires{
		PC:      pcValue,
		Instr:   instr,
		PCPlus4: pcPlus4,
		NextPC:  next,
	}
}
