package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/gatepipe/sim"
)

var _ = Describe("Comp", func() {
	var engine *sim.SerialEngine

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
	})

	It("should run until the pipeline is drained", func() {
		comp := MakeBuilder().
			WithEngine(engine).
			WithProgram(sumProgram()).
			BuildComponent("Core")

		comp.TickNow()

		Expect(engine.Run()).To(Succeed())
		Expect(comp.Core.CycleCount()).To(Equal(uint64(21)))
		Expect(comp.Core.Register(2)).To(Equal(uint32(30)))
		Expect(comp.Done()).To(BeTrue())
		Expect(sim.GHz.Cycle(engine.CurrentTime())).To(Equal(uint64(20)))
	})

	It("should stop after the cycle limit", func() {
		comp := MakeBuilder().
			WithEngine(engine).
			WithProgram(sumProgram()).
			WithMaxCycles(5).
			WithUntilDrained(false).
			BuildComponent("Core")

		comp.TickNow()

		Expect(engine.Run()).To(Succeed())
		Expect(comp.Core.CycleCount()).To(Equal(uint64(5)))
	})

	It("should keep ticking past the program when not waiting for drain", func() {
		comp := MakeBuilder().
			WithEngine(engine).
			WithProgram(sumProgram()).
			WithMaxCycles(30).
			WithUntilDrained(false).
			BuildComponent("Core")

		comp.TickNow()

		Expect(engine.Run()).To(Succeed())
		Expect(comp.Core.CycleCount()).To(Equal(uint64(30)))
	})

	It("should not tick a drained core", func() {
		comp := MakeBuilder().
			WithEngine(engine).
			BuildComponent("Core")

		Expect(comp.Tick()).To(BeFalse())
		Expect(comp.Core.CycleCount()).To(Equal(uint64(0)))
	})

	It("should forward hooks to the core", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		hook := NewMockHook(mockCtrl)
		hook.EXPECT().Func(gomock.Any()).AnyTimes()

		comp := MakeBuilder().
			WithEngine(engine).
			WithProgram(sumProgram()).
			BuildComponent("Core")
		comp.AcceptHook(hook)

		Expect(comp.NumHooks()).To(Equal(1))
		Expect(comp.Core.NumHooks()).To(Equal(1))
	})
})

var _ = Describe("Builder", func() {
	It("should apply the configuration", func() {
		cfg := DefaultConfig()
		cfg.DataMemorySize = 64
		cfg.StallOnDataHazard = true

		c := MakeBuilder().WithConfig(cfg).Build("Core")

		Expect(c.Name()).To(Equal("Core"))
		Expect(c.Config()).To(Equal(cfg))
		Expect(c.DataMemorySize()).To(Equal(uint64(64)))
	})

	It("should select the exception vector", func() {
		cfg := DefaultConfig()
		cfg.ExceptionVector = 0x80

		c := MakeBuilder().WithConfig(cfg).Build("Core")

		Expect(c.exceptionVector.Uint32()).To(Equal(uint32(0x80)))
	})

	It("should panic without an engine", func() {
		Expect(func() {
			MakeBuilder().BuildComponent("Core")
		}).To(Panic())
	})

	It("should panic on an empty instruction memory", func() {
		cfg := DefaultConfig()
		cfg.InstructionMemoryWords = 0

		Expect(func() {
			MakeBuilder().WithConfig(cfg).Build("Core")
		}).To(Panic())
	})

	It("should panic on a data memory smaller than a word", func() {
		cfg := DefaultConfig()
		cfg.DataMemorySize = 2

		Expect(func() {
			MakeBuilder().WithConfig(cfg).Build("Core")
		}).To(Panic())
	})
})
