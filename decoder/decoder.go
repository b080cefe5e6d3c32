// Package decoder turns an instruction word into the control signals that
// travel with it through the pipeline.
//
// Decoding is combinational. Opcode and funct fields are matched against
// fixed bit patterns with gates, and the outputs are ORs of the matched
// instruction lines. Undefined funct codes are not rejected: an R-type word
// with an unknown funct decodes as an R-type AND.
package decoder

import (
	"github.com/sarchlab/gatepipe/alu"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/logic"
)

// fieldMatches compares width bits of w, starting at logical bit high and
// going down, with pattern.
func fieldMatches(w logic.Word, high, width int, pattern uint32) bool {
	out := true
	for i := 0; i < width; i++ {
		want := pattern&(1<<uint(width-1-i)) != 0
		out = logic.And(out, logic.Xnor(w.Bit(high-i), want))
	}

	return out
}

func opcodeIs(w logic.Word, op uint32) bool {
	return fieldMatches(w, isa.OpcodeHigh, 6, op)
}

func functIs(w logic.Word, funct uint32) bool {
	return fieldMatches(w, isa.FunctHigh, 6, funct)
}

// Lines are the one-hot instruction recognizers of the decoder.
type Lines struct {
	RType, LW, SW, BEQ, ADDI, J bool
	ADD, SUB, AND, OR, SLT      bool
	NOP                         bool
}

// Recognize evaluates the instruction recognizers.
func Recognize(inst logic.Word) Lines {
	r := opcodeIs(inst, isa.OpRType)

	return Lines{
		RType: r,
		LW:    opcodeIs(inst, isa.OpLW),
		SW:    opcodeIs(inst, isa.OpSW),
		BEQ:   opcodeIs(inst, isa.OpBEQ),
		ADDI:  opcodeIs(inst, isa.OpADDI),
		J:     opcodeIs(inst, isa.OpJ),
		ADD:   logic.And(r, functIs(inst, isa.FunctADD)),
		SUB:   logic.And(r, functIs(inst, isa.FunctSUB)),
		AND:   logic.And(r, functIs(inst, isa.FunctAND)),
		OR:    logic.And(r, functIs(inst, isa.FunctOR)),
		SLT:   logic.And(r, functIs(inst, isa.FunctSLT)),
		NOP:   inst.IsZero(),
	}
}

// Decode produces the control signals of an instruction.
func Decode(inst logic.Word) Signals {
	l := Recognize(inst)

	b2 := logic.OrAll(l.ADD, l.SUB, l.SLT, l.ADDI, l.LW, l.SW, l.BEQ)
	b1 := l.SLT
	b0 := logic.OrAll(l.SUB, l.OR, l.BEQ)

	return Signals{
		RegDst:       l.RType,
		ALUSrc:       logic.Or3(l.LW, l.SW, l.ADDI),
		DataSrcToReg: l.LW,
		RegWrite:     logic.And(logic.Or3(l.RType, l.LW, l.ADDI), logic.Not(l.NOP)),
		MemRead:      l.LW,
		MemWrite:     l.SW,
		Branch:       l.BEQ,
		Jump:         l.J,
		ALUOp:        alu.OpcodeFromBits(b2, b1, b0),
	}
}
