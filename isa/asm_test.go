package isa_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/sarchlab/gatepipe/isa"
)

var _ = Describe("Assemble", func() {
	DescribeTable("instructions",
		func(line string, expected uint32) {
			w, err := isa.Assemble(line)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(Equal(expected))
		},
		Entry("ADD", "ADD R3, R1, R2", isa.Add(3, 1, 2)),
		Entry("lower case", "add r3, r1, r2", isa.Add(3, 1, 2)),
		Entry("ADDI", "ADDI R1, R0, 10", isa.Addi(1, 0, 10)),
		Entry("negative immediate", "ADDI R1, R0, -1", isa.Addi(1, 0, -1)),
		Entry("hex immediate", "ADDI R1, R0, 0x10", isa.Addi(1, 0, 16)),
		Entry("LW", "LW R2, 100(R0)", isa.Lw(2, 100, 0)),
		Entry("SW", "SW   R3, 100(R0)", isa.Sw(3, 100, 0)),
		Entry("BEQ", "BEQ R1, R1, 2", isa.Beq(1, 1, 2)),
		Entry("J", "J 0x0000010", isa.J(0x10)),
		Entry("NOP", "NOP", isa.Nop()),
		Entry("raw word", "0x00221820", isa.Add(3, 1, 2)),
		Entry(".word", ".word 0x2001000A", isa.Addi(1, 0, 10)),
		Entry("comment", "ADDI R1, R0, 1 # load one", isa.Addi(1, 0, 1)),
	)

	DescribeTable("errors",
		func(line string) {
			_, err := isa.Assemble(line)
			Expect(err).To(HaveOccurred())
		},
		Entry("unknown mnemonic", "MUL R1, R2, R3"),
		Entry("missing operand", "ADD R1, R2"),
		Entry("bad register", "ADD R4, R1, R2"),
		Entry("not a register", "ADD X1, R1, R2"),
		Entry("large immediate", "ADDI R1, R0, 70000"),
		Entry("large address", "J 0x4000000"),
		Entry("bad word", ".word zz"),
	)

	It("should report empty lines", func() {
		_, err := isa.Assemble("   ; nothing here")

		Expect(errors.Is(err, isa.ErrEmptyLine)).To(BeTrue())
	})

	It("should round-trip disassembly", func() {
		words := []uint32{
			isa.Add(3, 1, 2), isa.Sub(1, 2, 3), isa.And(0, 1, 2), isa.Or(2, 3, 0),
			isa.Slt(1, 0, 3), isa.Addi(2, 1, -100), isa.Lw(1, 8, 2), isa.Sw(0, 12, 3),
			isa.Beq(0, 1, -3), isa.J(0x123), isa.Nop(),
		}

		for _, w := range words {
			back, err := isa.Assemble(isa.Disassemble(w))

			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(w))
		}
	})
})

var _ = Describe("AssembleProgram", func() {
	It("should skip blank lines and comments", func() {
		src := `
# set up
ADDI R1, R0, 10
NOP

0x00000000
ADD R3, R1, R1
`
		words, err := isa.AssembleProgram(strings.NewReader(src))

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{isa.Addi(1, 0, 10), 0, 0, isa.Add(3, 1, 1)}))
	})

	It("should name the failing line", func() {
		_, err := isa.AssembleLines([]string{"NOP", "", "BAD"})

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})
})
