package pipeline

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

// HazardInput are the wires the hazard unit observes.
type HazardInput struct {
	// PCSource is the next-PC select driven by the execute stage.
	PCSource PCSource

	// IFIDInstr is the committed instruction of IF/ID.
	IFIDInstr logic.Word

	// Writers are the pending register writes of ID/EX, EX/MEM and MEM/WB.
	Writers [3]Writer
}

// HazardOutput are the write controls for PC, IF/ID and ID/EX.
type HazardOutput struct {
	PCWrite   bool
	IFIDWrite bool
	IFIDFlush bool
	IDEXWrite bool
	IDEXFlush bool

	BranchTaken bool
	JumpTaken   bool
	Stall       bool
}

// Fetch returns the controls of the fetch stage.
func (o HazardOutput) Fetch() FetchControl {
	return FetchControl{
		PCWrite:   o.PCWrite,
		IFIDWrite: o.IFIDWrite,
		IFIDFlush: o.IFIDFlush,
	}
}

// Decode returns the controls of the decode stage.
func (o HazardOutput) Decode() DecodeControl {
	return DecodeControl{
		IDEXWrite: o.IDEXWrite,
		IDEXFlush: o.IDEXFlush,
	}
}

// HazardUnit converts the execute-stage redirect into flushes of the two
// younger stages within the same cycle. It holds no state.
//
// With StallOnDataHazard, it also holds PC and IF/ID and inserts a bubble into
// ID/EX while the instruction in IF/ID reads a register that an older
// instruction has not written back yet. A redirect overrides the stall.
type HazardUnit struct {
	StallOnDataHazard bool
}

// Evaluate computes the write controls.
func (u HazardUnit) Evaluate(in HazardInput) HazardOutput {
	branchTaken := logic.And(in.PCSource[0], logic.Not(in.PCSource[1]))
	jumpTaken := logic.And(logic.Not(in.PCSource[0]), in.PCSource[1])
	redirect := logic.Or(branchTaken, jumpTaken)

	stall := logic.And3(
		u.StallOnDataHazard,
		DataHazard(in.IFIDInstr, in.Writers[:]),
		logic.Not(redirect),
	)

	return HazardOutput{
		PCWrite:     logic.Not(stall),
		IFIDWrite:   logic.Not(stall),
		IFIDFlush:   redirect,
		IDEXWrite:   true,
		IDEXFlush:   logic.Or(redirect, stall),
		BranchTaken: branchTaken,
		JumpTaken:   jumpTaken,
		Stall:       stall,
	}
}

func indexEqual(a, b register.Index) bool {
	return logic.And(logic.Xnor(a[0], b[0]), logic.Xnor(a[1], b[1]))
}

// DataHazard tells if inst reads a register that one of the writers will
// write. RS is read by every instruction but J and NOP. RT is read by R-type,
// SW and BEQ.
func DataHazard(inst logic.Word, writers []Writer) bool {
	l := decoder.Recognize(inst)
	rs := fieldIndex(inst, isa.RsHigh)
	rt := fieldIndex(inst, isa.RtHigh)

	valid := logic.Not(l.NOP)
	readsRs := logic.And(valid, logic.Not(l.J))
	readsRt := logic.And(valid, logic.Or3(l.RType, l.SW, l.BEQ))

	hazard := false
	for _, w := range writers {
		hitRs := logic.And(readsRs, indexEqual(w.Dest, rs))
		hitRt := logic.And(readsRt, indexEqual(w.Dest, rt))
		hazard = logic.Or(hazard, logic.And(w.RegWrite, logic.Or(hitRs, hitRt)))
	}

	return hazard
}
