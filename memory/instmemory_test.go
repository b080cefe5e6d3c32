package memory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/logic"
)

var _ = Describe("InstructionMemory", func() {
	var im *InstructionMemory

	BeforeEach(func() {
		im = NewInstructionMemory(DefaultInstructionMemoryWords)
	})

	It("should read words by address/4", func() {
		im.Load([]uint32{10, 20, 30})

		Expect(im.Read(logic.WordFromUint32(0)).Uint32()).To(Equal(uint32(10)))
		Expect(im.Read(logic.WordFromUint32(4)).Uint32()).To(Equal(uint32(20)))
		Expect(im.Read(logic.WordFromUint32(11)).Uint32()).To(Equal(uint32(30)))
		Expect(im.Loaded()).To(Equal(3))
	})

	It("should truncate long programs", func() {
		program := make([]uint32, 300)
		for i := range program {
			program[i] = uint32(i)
		}

		n := im.Load(program)

		Expect(n).To(Equal(256))
		Expect(im.Word(255)).To(Equal(uint32(255)))
		Expect(im.Capacity()).To(Equal(256))
	})

	It("should read NOP beyond the capacity", func() {
		im.Load([]uint32{1})

		Expect(im.Read(logic.WordFromUint32(1024)).IsZero()).To(BeTrue())
		Expect(im.Read(logic.WordFromUint32(0xFFFFFFFC)).IsZero()).To(BeTrue())
	})

	It("should clear the previous program on load", func() {
		im.Load([]uint32{1, 2, 3})
		im.Load([]uint32{9})

		Expect(im.Word(1)).To(Equal(uint32(0)))
	})
})
