// Package alu implements the arithmetic-logic unit as a chain of one-bit
// slices.
package alu

// Opcode is the 3-bit operation select of the ALU.
type Opcode uint8

// The ALU operations.
const (
	OpAnd  Opcode = 0b000
	OpOr   Opcode = 0b001
	OpXor  Opcode = 0b010
	OpNor  Opcode = 0b011
	OpAdd  Opcode = 0b100
	OpSub  Opcode = 0b101
	OpSlt  Opcode = 0b110
	OpNull Opcode = 0b111
)

// OpcodeFromBits builds an opcode from its three select lines, most
// significant first.
func OpcodeFromBits(b2, b1, b0 bool) Opcode {
	var o Opcode
	if b2 {
		o |= 4
	}

	if b1 {
		o |= 2
	}

	if b0 {
		o |= 1
	}

	return o
}

// Bits returns the three select lines, most significant first.
func (o Opcode) Bits() (b2, b1, b0 bool) {
	return o&4 != 0, o&2 != 0, o&1 != 0
}

func (o Opcode) String() string {
	switch o & 7 {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	case OpNor:
		return "NOR"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpSlt:
		return "SLT"
	default:
		return "NULL"
	}
}
