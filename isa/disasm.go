package isa

import "fmt"

var rTypeMnemonics = map[uint32]string{
	FunctADD: "ADD ",
	FunctSUB: "SUB ",
	FunctAND: "AND ",
	FunctOR:  "OR  ",
	FunctSLT: "SLT ",
}

// Disassemble renders an instruction word in assembly syntax. Unknown
// encodings are rendered with their opcode or funct value.
func Disassemble(inst uint32) string {
	if inst == NOP {
		return "NOP"
	}

	rs, rt, rd := Rs(inst), Rt(inst), Rd(inst)
	imm := Imm(inst)

	switch Opcode(inst) {
	case OpRType:
		m, ok := rTypeMnemonics[Funct(inst)]
		if !ok {
			return fmt.Sprintf("R-UNK (Funct:0x%02X)", Funct(inst))
		}

		return fmt.Sprintf("%s R%d, R%d, R%d", m, rd, rs, rt)
	case OpADDI:
		return fmt.Sprintf("ADDI R%d, R%d, %d", rt, rs, imm)
	case OpLW:
		return fmt.Sprintf("LW   R%d, %d(R%d)", rt, imm, rs)
	case OpSW:
		return fmt.Sprintf("SW   R%d, %d(R%d)", rt, imm, rs)
	case OpBEQ:
		return fmt.Sprintf("BEQ  R%d, R%d, %d", rs, rt, imm)
	case OpJ:
		return fmt.Sprintf("J    0x%07X", Addr(inst))
	default:
		return fmt.Sprintf("UNK  (Op:0x%02X)", Opcode(inst))
	}
}
