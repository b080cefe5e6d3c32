package pipeline

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/alu"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

var _ = Describe("SignExtend16", func() {
	It("should extend positive immediates with zeros", func() {
		Expect(SignExtend16(word(0xFFFF7FFF)).Uint32()).To(Equal(uint32(0x7FFF)))
	})

	It("should extend negative immediates with ones", func() {
		Expect(SignExtend16(word(0x00008000)).Uint32()).
			To(Equal(uint32(0xFFFF8000)))
		Expect(SignExtend16(word(isa.Beq(0, 0, -1))).Int32()).
			To(Equal(int32(-1)))
	})
})

var _ = Describe("JumpTarget", func() {
	It("should concatenate PC+4, address and zeros", func() {
		got := JumpTarget(word(isa.J(3)), word(0xA0000010))

		Expect(got.Uint32()).To(Equal(uint32(0xA000000C)))
	})
})

var _ = Describe("IDEX", func() {
	var (
		rf   *register.File
		ifid *IFID
		idex *IDEX
	)

	BeforeEach(func() {
		rf = &register.File{}
		rf.Preset(1, word(10))
		rf.Preset(2, word(20))
		ifid = &IFID{}
		idex = &IDEX{}
	})

	latch := func(inst, pcPlus4 uint32) {
		ifid.Instr.Preset(word(inst))
		ifid.PCPlus4.Preset(word(pcPlus4))
	}

	decode := func(ctl DecodeControl) DecodeWires {
		var w DecodeWires
		cycle(func(clk logic.Phase) {
			w = idex.Step(ifid, rf, ctl, clk)
		})

		return w
	}

	open := DecodeControl{IDEXWrite: true}

	It("should decode an R-type instruction", func() {
		latch(isa.Sub(3, 2, 1), 12)

		w := decode(open)

		Expect(w.Rs).To(Equal(register.IndexFromInt(2)))
		Expect(w.Rt).To(Equal(register.IndexFromInt(1)))
		Expect(w.Rd).To(Equal(register.IndexFromInt(3)))

		v := idex.Value()
		Expect(v.Signals.ALUOp).To(Equal(alu.OpSub))
		Expect(v.Signals.RegDst).To(BeTrue())
		Expect(v.ReadData1).To(Equal(uint32(20)))
		Expect(v.ReadData2).To(Equal(uint32(10)))
		Expect(v.Rs).To(Equal(2))
		Expect(v.Rt).To(Equal(1))
		Expect(v.Rd).To(Equal(3))
		Expect(v.PCPlus4).To(Equal(uint32(12)))
	})

	It("should decode a load", func() {
		latch(isa.Lw(2, -4, 1), 4)

		decode(open)

		v := idex.Value()
		Expect(v.Signals.MemRead).To(BeTrue())
		Expect(v.Signals.ALUSrc).To(BeTrue())
		Expect(int32(v.ImmExt)).To(Equal(int32(-4)))
		Expect(idex.PendingWrite()).To(Equal(Writer{
			RegWrite: true,
			Dest:     register.IndexFromInt(2),
		}))
	})

	It("should report the destination of R-type writes", func() {
		latch(isa.Add(3, 1, 2), 4)

		decode(open)

		Expect(idex.PendingWrite().Dest).To(Equal(register.IndexFromInt(3)))
	})

	It("should zero all fields but PC+4 on flush", func() {
		latch(isa.Add(3, 1, 2), 8)

		decode(DecodeControl{IDEXWrite: true, IDEXFlush: true})

		Expect(idex.Value()).To(Equal(IDEXValue{PCPlus4: 8}))
		Expect(idex.PendingWrite().RegWrite).To(BeFalse())
	})

	It("should zero PC+4 on flush when configured", func() {
		idex.FlushClearsPCPlus4 = true
		latch(isa.Add(3, 1, 2), 8)

		decode(DecodeControl{IDEXFlush: true})

		Expect(idex.Value()).To(Equal(IDEXValue{}))
	})

	It("should hold when the write is cleared", func() {
		latch(isa.Add(3, 1, 2), 8)
		decode(open)
		before := idex.Value()

		latch(isa.Sub(1, 1, 1), 12)
		decode(DecodeControl{})

		Expect(idex.Value()).To(Equal(before))
	})
})
