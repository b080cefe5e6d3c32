package isa

// EncodeR builds an R-type instruction. Register indices are masked to two
// bits.
func EncodeR(rs, rt, rd, shamt, funct uint32) uint32 {
	return OpRType<<26 |
		(rs&0x3)<<21 |
		(rt&0x3)<<16 |
		(rd&0x3)<<11 |
		(shamt&0x1F)<<6 |
		funct&0x3F
}

// EncodeI builds an I-type instruction. The immediate is truncated to 16 bits.
func EncodeI(op, rs, rt uint32, imm int32) uint32 {
	return (op&0x3F)<<26 |
		(rs&0x3)<<21 |
		(rt&0x3)<<16 |
		uint32(uint16(imm))
}

// EncodeJ builds a J-type instruction. The address is truncated to 26 bits.
func EncodeJ(op, addr uint32) uint32 {
	return (op&0x3F)<<26 | addr&0x03FFFFFF
}

// Add encodes ADD rd, rs, rt.
func Add(rd, rs, rt uint32) uint32 {
	return EncodeR(rs, rt, rd, 0, FunctADD)
}

// Sub encodes SUB rd, rs, rt.
func Sub(rd, rs, rt uint32) uint32 {
	return EncodeR(rs, rt, rd, 0, FunctSUB)
}

// And encodes AND rd, rs, rt.
func And(rd, rs, rt uint32) uint32 {
	return EncodeR(rs, rt, rd, 0, FunctAND)
}

// Or encodes OR rd, rs, rt.
func Or(rd, rs, rt uint32) uint32 {
	return EncodeR(rs, rt, rd, 0, FunctOR)
}

// Slt encodes SLT rd, rs, rt.
func Slt(rd, rs, rt uint32) uint32 {
	return EncodeR(rs, rt, rd, 0, FunctSLT)
}

// Addi encodes ADDI rt, rs, imm.
func Addi(rt, rs uint32, imm int32) uint32 {
	return EncodeI(OpADDI, rs, rt, imm)
}

// Lw encodes LW rt, offset(base).
func Lw(rt uint32, offset int32, base uint32) uint32 {
	return EncodeI(OpLW, base, rt, offset)
}

// Sw encodes SW rt, offset(base).
func Sw(rt uint32, offset int32, base uint32) uint32 {
	return EncodeI(OpSW, base, rt, offset)
}

// Beq encodes BEQ rs, rt, offset. The offset counts words from the
// instruction after the branch.
func Beq(rs, rt uint32, offset int32) uint32 {
	return EncodeI(OpBEQ, rs, rt, offset)
}

// J encodes J addr, where addr is a word address.
func J(addr uint32) uint32 {
	return EncodeJ(OpJ, addr)
}

// Nop returns the all-zero instruction.
func Nop() uint32 {
	return NOP
}
