package alu

import "github.com/sarchlab/gatepipe/logic"

type selectLines struct {
	s2, s1, s0 bool
}

func selectLinesOf(op Opcode) selectLines {
	s2, s1, s0 := op.Bits()
	return selectLines{s2: s2, s1: s1, s0: s0}
}

func (s selectLines) isAdd() bool {
	return logic.And3(s.s2, logic.Not(s.s1), logic.Not(s.s0))
}

func (s selectLines) isSub() bool {
	return logic.And3(s.s2, logic.Not(s.s1), s.s0)
}

func (s selectLines) isSlt() bool {
	return logic.And3(s.s2, s.s1, logic.Not(s.s0))
}

func fullAdder(a, b, cin bool) (sum, cout bool) {
	p := logic.Xor(a, b)
	sum = logic.Xor(p, cin)
	cout = logic.Or(logic.And(a, b), logic.And(p, cin))

	return sum, cout
}

// slice is the one-bit ALU shared by every bus width.
func slice(a, b, cin bool, sel selectLines) (out, cout bool) {
	andOut := logic.And(a, b)
	orOut := logic.Or(a, b)
	xorOut := logic.Xor(a, b)
	norOut := logic.Nor(a, b)
	addOut, addCarry := fullAdder(a, b, cin)
	subOut, subCarry := fullAdder(a, logic.Not(b), cin)
	nullOut := false

	// Three levels of 2-to-1 muxes, the first one driven by the most
	// significant select line.
	g0s0 := logic.Mux(xorOut, subOut, sel.s2)
	g0s1 := logic.Mux(norOut, nullOut, sel.s2)
	g0s2 := logic.Mux(andOut, addOut, sel.s2)
	g0s3 := logic.Mux(orOut, subOut, sel.s2)
	g1s0 := logic.Mux(g0s2, g0s0, sel.s1)
	g1s1 := logic.Mux(g0s3, g0s1, sel.s1)
	out = logic.Mux(g1s0, g1s1, sel.s0)

	cout = logic.Or3(
		logic.And(sel.isAdd(), addCarry),
		logic.And(sel.isSub(), subCarry),
		logic.And(sel.isSlt(), subCarry),
	)

	return out, cout
}

// compute runs the slices over buses of any width. Index 0 of a and b is the
// most significant bit, so the carry travels from the last index to the first.
func compute(a, b []bool, carryIn bool, op Opcode, out []bool) bool {
	sel := selectLinesOf(op)

	carry := logic.Or(carryIn, logic.Or(sel.isSub(), sel.isSlt()))
	carryIntoMSB := false

	for i := len(out) - 1; i >= 0; i-- {
		if i == 0 {
			carryIntoMSB = carry
		}

		out[i], carry = slice(a[i], b[i], carry, sel)
	}

	overflow := logic.Xor(carryIntoMSB, carry)
	less := logic.Xor(out[0], overflow)

	isSlt := sel.isSlt()
	for i := range out {
		out[i] = logic.Mux(out[i], false, isSlt)
	}

	last := len(out) - 1
	out[last] = logic.Mux(out[last], less, isSlt)

	return carry
}

// Compute evaluates the ALU on two words. For ADD, carryIn is the carry into
// the least significant bit; SUB and SLT force it to 1. The carry out is zero
// for operations other than ADD, SUB and SLT.
func Compute(a, b logic.Word, carryIn bool, op Opcode) (logic.Word, bool) {
	var out logic.Word
	carry := compute(a[:], b[:], carryIn, op, out[:])

	return out, carry
}

// ComputeByte evaluates the ALU on two bytes.
func ComputeByte(a, b logic.Byte, carryIn bool, op Opcode) (logic.Byte, bool) {
	var out logic.Byte
	carry := compute(a[:], b[:], carryIn, op, out[:])

	return out, carry
}
