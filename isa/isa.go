// Package isa describes the instruction set: field layout, opcode and funct
// values, encoding helpers, an assembler and a disassembler.
//
// Instructions use the classic R, I and J formats. Only four registers exist,
// so register fields keep their 5-bit width but only the two least significant
// bits are meaningful.
package isa

// Primary opcodes, bits 31..26.
const (
	OpRType uint32 = 0x00
	OpJ     uint32 = 0x02
	OpBEQ   uint32 = 0x04
	OpADDI  uint32 = 0x08
	OpLW    uint32 = 0x23
	OpSW    uint32 = 0x2B
)

// Funct codes of R-type instructions, bits 5..0.
const (
	FunctADD uint32 = 0x20
	FunctSUB uint32 = 0x22
	FunctAND uint32 = 0x24
	FunctOR  uint32 = 0x25
	FunctSLT uint32 = 0x2A
)

// Logical bit positions of the instruction fields. The register index fields
// are the two low bits of the 5-bit MIPS fields.
const (
	OpcodeHigh = 31
	RsHigh     = 22
	RtHigh     = 17
	RdHigh     = 12
	ImmHigh    = 15
	FunctHigh  = 5
	AddrHigh   = 25
)

// NOP is the all-zero instruction.
const NOP uint32 = 0

// Opcode extracts bits 31..26.
func Opcode(inst uint32) uint32 {
	return (inst >> 26) & 0x3F
}

// Rs extracts bits 25..21.
func Rs(inst uint32) uint32 {
	return (inst >> 21) & 0x1F
}

// Rt extracts bits 20..16.
func Rt(inst uint32) uint32 {
	return (inst >> 16) & 0x1F
}

// Rd extracts bits 15..11.
func Rd(inst uint32) uint32 {
	return (inst >> 11) & 0x1F
}

// Shamt extracts bits 10..6.
func Shamt(inst uint32) uint32 {
	return (inst >> 6) & 0x1F
}

// Funct extracts bits 5..0.
func Funct(inst uint32) uint32 {
	return inst & 0x3F
}

// Imm extracts the sign-extended immediate of bits 15..0.
func Imm(inst uint32) int32 {
	return int32(int16(inst & 0xFFFF))
}

// Addr extracts the 26-bit jump address.
func Addr(inst uint32) uint32 {
	return inst & 0x03FFFFFF
}
