package pipeline

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

// IDEX is the register between decode and execute.
type IDEX struct {
	Signals    register.Reg32
	ReadData1  register.Reg32
	ReadData2  register.Reg32
	ImmExt     register.Reg32
	RsIdx      register.Reg32
	RtIdx      register.Reg32
	RdIdx      register.Reg32
	PCPlus4    register.Reg32
	JumpTarget register.Reg32

	// FlushClearsPCPlus4 makes a flush zero PCPlus4 as well. By default PCPlus4
	// passes through a flush.
	FlushClearsPCPlus4 bool
}

// IDEXValue is the committed content of ID/EX.
type IDEXValue struct {
	Signals    decoder.Signals `json:"signals"`
	ReadData1  uint32          `json:"read_data1"`
	ReadData2  uint32          `json:"read_data2"`
	ImmExt     uint32          `json:"imm_ext"`
	Rs         int             `json:"rs"`
	Rt         int             `json:"rt"`
	Rd         int             `json:"rd"`
	PCPlus4    uint32          `json:"pc_plus4"`
	JumpTarget uint32          `json:"jump_target"`
}

// Value returns the committed content.
func (r *IDEX) Value() IDEXValue {
	return IDEXValue{
		Signals:    decoder.Unpack(r.Signals.Q()),
		ReadData1:  r.ReadData1.Q().Uint32(),
		ReadData2:  r.ReadData2.Q().Uint32(),
		ImmExt:     r.ImmExt.Q().Uint32(),
		Rs:         register.IndexFromWord(r.RsIdx.Q()).Int(),
		Rt:         register.IndexFromWord(r.RtIdx.Q()).Int(),
		Rd:         register.IndexFromWord(r.RdIdx.Q()).Int(),
		PCPlus4:    r.PCPlus4.Q().Uint32(),
		JumpTarget: r.JumpTarget.Q().Uint32(),
	}
}

// PendingWrite returns the register the latched instruction will write.
func (r *IDEX) PendingWrite() Writer {
	s := decoder.Unpack(r.Signals.Q())
	dest := logic.MuxWord(r.RtIdx.Q(), r.RdIdx.Q(), s.RegDst)

	return Writer{RegWrite: s.RegWrite, Dest: register.IndexFromWord(dest)}
}

func fieldIndex(inst logic.Word, high int) register.Index {
	return register.Index{inst.Bit(high), inst.Bit(high - 1)}
}

// SignExtend16 copies bit 15 of w into bits 31..16.
func SignExtend16(w logic.Word) logic.Word {
	sign := w.Bit(isa.ImmHigh)

	var out logic.Word
	for i := 0; i < logic.WordWidth; i++ {
		if i < 16 {
			out[i] = sign
		} else {
			out[i] = w[i]
		}
	}

	return out
}

// JumpTarget concatenates the top four bits of pcPlus4, the 26-bit address of
// inst and two zero bits.
func JumpTarget(inst, pcPlus4 logic.Word) logic.Word {
	var out logic.Word
	copy(out[0:4], pcPlus4[0:4])
	copy(out[4:30], inst[6:32])

	return out
}

// Decode evaluates the decode stage on the committed content of IF/ID.
func Decode(ifid *IFID, rf RegisterFile) DecodeWires {
	inst := ifid.Instr.Q()

	w := DecodeWires{
		Instr:      inst,
		Signals:    decoder.Decode(inst),
		ImmExt:     SignExtend16(inst),
		JumpTarget: JumpTarget(inst, ifid.PCPlus4.Q()),
		Rs:         fieldIndex(inst, isa.RsHigh),
		Rt:         fieldIndex(inst, isa.RtHigh),
		Rd:         fieldIndex(inst, isa.RdHigh),
	}
	w.ReadData1, w.ReadData2 = rf.Read(w.Rs, w.Rt)

	return w
}

// Step runs the decode stage and feeds ID/EX. A flush zeros every field
// except, by default, PCPlus4.
func (r *IDEX) Step(
	ifid *IFID,
	rf RegisterFile,
	ctl DecodeControl,
	clk logic.Phase,
) DecodeWires {
	w := Decode(ifid, rf)

	sc := stageControl{write: ctl.IDEXWrite, flush: ctl.IDEXFlush}
	sc.step(&r.Signals, w.Signals.Pack(), clk)
	sc.step(&r.ReadData1, w.ReadData1, clk)
	sc.step(&r.ReadData2, w.ReadData2, clk)
	sc.step(&r.ImmExt, w.ImmExt, clk)
	sc.step(&r.RsIdx, w.Rs.Word(), clk)
	sc.step(&r.RtIdx, w.Rt.Word(), clk)
	sc.step(&r.RdIdx, w.Rd.Word(), clk)
	sc.step(&r.JumpTarget, w.JumpTarget, clk)

	pcPlus4 := ifid.PCPlus4.Q()
	if r.FlushClearsPCPlus4 {
		sc.step(&r.PCPlus4, pcPlus4, clk)
	} else {
		sc.stepKeep(&r.PCPlus4, pcPlus4, clk)
	}

	return w
}
