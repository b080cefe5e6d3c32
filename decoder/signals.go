package decoder

import (
	"fmt"

	"github.com/sarchlab/gatepipe/alu"
	"github.com/sarchlab/gatepipe/logic"
)

// Logical bit positions of the control signals in a packed word.
const (
	bitRegDst       = 31
	bitALUSrc       = 30
	bitDataSrcToReg = 29
	bitRegWrite     = 28
	bitMemRead      = 27
	bitMemWrite     = 26
	bitBranch       = 25
	bitJump         = 24
	bitALUOp2       = 23
	bitALUOp1       = 22
	bitALUOp0       = 21
)

// Signals is the control bundle of one instruction.
type Signals struct {
	RegDst       bool
	ALUSrc       bool
	DataSrcToReg bool
	RegWrite     bool
	MemRead      bool
	MemWrite     bool
	Branch       bool
	Jump         bool
	ALUOp        alu.Opcode
}

// Pack places the signals in a word so that they fit in a 32-bit pipeline
// register.
func (s Signals) Pack() logic.Word {
	b2, b1, b0 := s.ALUOp.Bits()

	return logic.Word{}.
		WithBit(bitRegDst, s.RegDst).
		WithBit(bitALUSrc, s.ALUSrc).
		WithBit(bitDataSrcToReg, s.DataSrcToReg).
		WithBit(bitRegWrite, s.RegWrite).
		WithBit(bitMemRead, s.MemRead).
		WithBit(bitMemWrite, s.MemWrite).
		WithBit(bitBranch, s.Branch).
		WithBit(bitJump, s.Jump).
		WithBit(bitALUOp2, b2).
		WithBit(bitALUOp1, b1).
		WithBit(bitALUOp0, b0)
}

// Unpack reads a word produced by Pack.
func Unpack(w logic.Word) Signals {
	return Signals{
		RegDst:       w.Bit(bitRegDst),
		ALUSrc:       w.Bit(bitALUSrc),
		DataSrcToReg: w.Bit(bitDataSrcToReg),
		RegWrite:     w.Bit(bitRegWrite),
		MemRead:      w.Bit(bitMemRead),
		MemWrite:     w.Bit(bitMemWrite),
		Branch:       w.Bit(bitBranch),
		Jump:         w.Bit(bitJump),
		ALUOp: alu.OpcodeFromBits(
			w.Bit(bitALUOp2), w.Bit(bitALUOp1), w.Bit(bitALUOp0)),
	}
}

// Mem returns the part of the bundle used by the memory stage.
func (s Signals) Mem() MemSignals {
	return MemSignals{MemRead: s.MemRead, MemWrite: s.MemWrite}
}

// WB returns the part of the bundle used by the writeback stage.
func (s Signals) WB() WBSignals {
	return WBSignals{RegWrite: s.RegWrite, DataSrcToReg: s.DataSrcToReg}
}

// HasSideEffect tells if the bundle can write a register or memory, or
// redirect the fetch.
func (s Signals) HasSideEffect() bool {
	return logic.OrAll(s.RegWrite, s.MemWrite, s.Branch, s.Jump)
}

func (s Signals) String() string {
	return fmt.Sprintf(
		"{reg_dst:%t alu_src:%t data_src:%t reg_write:%t mem_read:%t "+
			"mem_write:%t branch:%t jump:%t alu_op:%s}",
		s.RegDst, s.ALUSrc, s.DataSrcToReg, s.RegWrite, s.MemRead,
		s.MemWrite, s.Branch, s.Jump, s.ALUOp)
}

// MemSignals is the memory-stage bundle. It packs into bits 31 (mem_read) and
// 30 (mem_write).
type MemSignals struct {
	MemRead  bool
	MemWrite bool
}

// Pack places the signals in a word.
func (s MemSignals) Pack() logic.Word {
	return logic.Word{}.WithBit(31, s.MemRead).WithBit(30, s.MemWrite)
}

// UnpackMem reads a word produced by MemSignals.Pack.
func UnpackMem(w logic.Word) MemSignals {
	return MemSignals{MemRead: w.Bit(31), MemWrite: w.Bit(30)}
}

// WBSignals is the writeback bundle. It packs into bits 31 (reg_write) and 30
// (data_src_to_reg).
type WBSignals struct {
	RegWrite     bool
	DataSrcToReg bool
}

// Pack places the signals in a word.
func (s WBSignals) Pack() logic.Word {
	return logic.Word{}.WithBit(31, s.RegWrite).WithBit(30, s.DataSrcToReg)
}

// UnpackWB reads a word produced by WBSignals.Pack.
func UnpackWB(w logic.Word) WBSignals {
	return WBSignals{RegWrite: w.Bit(31), DataSrcToReg: w.Bit(30)}
}
