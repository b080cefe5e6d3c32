package logic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/logic"
)

var _ = Describe("Bus", func() {
	It("should place the most significant bit at index 0", func() {
		w := logic.WordFromUint32(0x80000001)

		Expect(w[0]).To(BeTrue())
		Expect(w[31]).To(BeTrue())
		Expect(w.Bit(31)).To(BeTrue())
		Expect(w.Bit(0)).To(BeTrue())
		Expect(w.Bit(1)).To(BeFalse())
	})

	It("should convert words back and forth", func() {
		for _, v := range []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF, 0x00010000} {
			Expect(logic.WordFromUint32(v).Uint32()).To(Equal(v))
		}
	})

	It("should interpret words as signed", func() {
		Expect(logic.WordFromUint32(0xFFFFFFFE).Int32()).To(Equal(int32(-2)))
	})

	It("should split words into bytes", func() {
		w := logic.WordFromUint32(0x11223344)

		Expect(w.Byte(0).Uint8()).To(Equal(uint8(0x11)))
		Expect(w.Byte(3).Uint8()).To(Equal(uint8(0x44)))

		w = w.WithByte(1, logic.ByteFromUint8(0xAA))
		Expect(w.Uint32()).To(Equal(uint32(0x11AA3344)))
	})

	It("should set single bits", func() {
		w := logic.Word{}.WithBit(4, true)
		Expect(w.Uint32()).To(Equal(uint32(0x10)))
	})

	It("should detect zero on every bit", func() {
		Expect(logic.Word{}.IsZero()).To(BeTrue())
		Expect(logic.WordFromUint32(1).IsZero()).To(BeFalse())
		Expect(logic.WordFromUint32(0x00010000).IsZero()).To(BeFalse())
	})

	It("should shift left by two", func() {
		Expect(logic.ShiftLeft2(logic.WordFromUint32(0x40000003)).Uint32()).
			To(Equal(uint32(0x0000000C)))
	})

	It("should gate words", func() {
		w := logic.WordFromUint32(0xFFFF)

		Expect(logic.AndWord(w, false).IsZero()).To(BeTrue())
		Expect(logic.AndWord(w, true)).To(Equal(w))
	})

	It("should print", func() {
		Expect(logic.WordFromUint32(0xAB).String()).To(Equal("0x000000AB"))
		Expect(logic.ByteFromUint8(0x05).Binary()).To(Equal("00000101"))
		Expect(logic.ByteFromUint8(0x05).String()).To(Equal("0x05"))
	})
})

var _ = Describe("Phase", func() {
	It("should map phases to clock levels", func() {
		Expect(logic.Settle.Level()).To(BeFalse())
		Expect(logic.Commit.Level()).To(BeTrue())
		Expect(logic.Phases[0]).To(Equal(logic.Settle))
		Expect(logic.Commit.String()).To(Equal("commit"))
	})
})
