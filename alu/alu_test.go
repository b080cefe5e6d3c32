package alu

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/logic"
)

func compute32(a, b uint32, op Opcode) (uint32, bool) {
	out, carry := Compute(logic.WordFromUint32(a), logic.WordFromUint32(b),
		false, op)
	return out.Uint32(), carry
}

func compute8(a, b uint8, op Opcode) (uint8, bool) {
	out, carry := ComputeByte(logic.ByteFromUint8(a), logic.ByteFromUint8(b),
		false, op)
	return out.Uint8(), carry
}

var _ = Describe("Opcode", func() {
	It("should split into select lines", func() {
		b2, b1, b0 := OpSlt.Bits()

		Expect([]bool{b2, b1, b0}).To(Equal([]bool{true, true, false}))
		Expect(OpcodeFromBits(true, false, true)).To(Equal(OpSub))
		Expect(OpNor.String()).To(Equal("NOR"))
		Expect(OpNull.String()).To(Equal("NULL"))
	})
})

var _ = Describe("ALU", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(1))
	})

	DescribeTable("32-bit operations",
		func(a, b uint32, op Opcode, expected uint32) {
			out, _ := compute32(a, b, op)
			Expect(out).To(Equal(expected))
		},
		Entry("AND", uint32(0xF0F0), uint32(0xFF00), OpAnd, uint32(0xF000)),
		Entry("OR", uint32(0xF0F0), uint32(0xFF00), OpOr, uint32(0xFFF0)),
		Entry("XOR", uint32(0xF0F0), uint32(0xFF00), OpXor, uint32(0x0FF0)),
		Entry("NOR", uint32(0xF0F0), uint32(0xFF00), OpNor,
			uint32(0xFFFF000F)),
		Entry("ADD", uint32(10), uint32(20), OpAdd, uint32(30)),
		Entry("ADD wraps", uint32(0xFFFFFFFF), uint32(2), OpAdd, uint32(1)),
		Entry("SUB", uint32(5), uint32(7), OpSub, uint32(0xFFFFFFFE)),
		Entry("SLT less", uint32(0xFFFFFFFF), uint32(1), OpSlt, uint32(1)),
		Entry("SLT not less", uint32(1), uint32(0xFFFFFFFF), OpSlt,
			uint32(0)),
		Entry("SLT equal", uint32(9), uint32(9), OpSlt, uint32(0)),
		Entry("SLT overflow", uint32(0x80000000), uint32(1), OpSlt, uint32(1)),
		Entry("SLT overflow reversed", uint32(0x7FFFFFFF), uint32(0xFFFFFFFF),
			OpSlt, uint32(0)),
		Entry("NULL", uint32(0x1234), uint32(0x5678), OpNull, uint32(0)),
	)

	It("should add and subtract modulo 2^32", func() {
		for i := 0; i < 200; i++ {
			a, b := rng.Uint32(), rng.Uint32()

			sum, _ := compute32(a, b, OpAdd)
			diff, _ := compute32(a, b, OpSub)

			Expect(sum).To(Equal(a + b))
			Expect(diff).To(Equal(a - b))
		}
	})

	It("should compare signed values", func() {
		for i := 0; i < 200; i++ {
			a, b := rng.Uint32(), rng.Uint32()

			out, _ := compute32(a, b, OpSlt)

			expected := uint32(0)
			if int32(a) < int32(b) {
				expected = 1
			}
			Expect(out).To(Equal(expected))
		}
	})

	It("should add, subtract and compare bytes", func() {
		for a := 0; a < 256; a += 7 {
			for b := 0; b < 256; b += 11 {
				x, y := uint8(a), uint8(b)

				sum, _ := compute8(x, y, OpAdd)
				diff, _ := compute8(x, y, OpSub)
				less, _ := compute8(x, y, OpSlt)

				Expect(sum).To(Equal(x + y))
				Expect(diff).To(Equal(x - y))

				expected := uint8(0)
				if int8(x) < int8(y) {
					expected = 1
				}
				Expect(less).To(Equal(expected))
			}
		}
	})

	It("should report the carry out of additions", func() {
		_, carry := compute32(0xFFFFFFFF, 1, OpAdd)
		Expect(carry).To(BeTrue())

		_, carry = compute32(1, 1, OpAdd)
		Expect(carry).To(BeFalse())
	})

	It("should report no borrow as carry out of subtractions", func() {
		_, carry := compute32(7, 5, OpSub)
		Expect(carry).To(BeTrue())

		_, carry = compute32(5, 7, OpSub)
		Expect(carry).To(BeFalse())
	})

	It("should force the carry out to zero for logic operations", func() {
		for _, op := range []Opcode{OpAnd, OpOr, OpXor, OpNor, OpNull} {
			_, carry := compute32(0xFFFFFFFF, 0xFFFFFFFF, op)
			Expect(carry).To(BeFalse())
		}
	})

	It("should use the carry-in for additions", func() {
		out, _ := Compute(logic.WordFromUint32(1), logic.WordFromUint32(1),
			true, OpAdd)

		Expect(out.Uint32()).To(Equal(uint32(3)))
	})
})
