package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/gatepipe/sim"
)

var _ = Describe("AverageTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *AverageTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewAverageTimeTracer(timeTeller, KindFilter("inst"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should average the task times", func() {
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(1))
		t.StartTask(Task{ID: "1", Kind: "inst"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(2))
		t.StartTask(Task{ID: "2", Kind: "inst"})

		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(6))
		t.EndTask(Task{ID: "1"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(5))
		t.EndTask(Task{ID: "2"})

		Expect(t.TotalCount()).To(Equal(uint64(2)))
		Expect(t.AverageTime()).To(BeNumerically("~", 4, 1e-12))
		Expect(t.MaxTime()).To(BeNumerically("~", 5, 1e-12))
	})

	It("should ignore filtered tasks", func() {
		t.StartTask(Task{ID: "1", Kind: "req"})
		timeTeller.EXPECT().CurrentTime().Return(sim.VTimeInSec(6))
		t.EndTask(Task{ID: "1"})

		Expect(t.TotalCount()).To(Equal(uint64(0)))
	})
})
