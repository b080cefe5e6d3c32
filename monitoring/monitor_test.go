package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/sim"
)

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		m        *Monitor
	)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		m.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		m = NewMonitor()
		m.RegisterEngine(engine)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse reserved ports", func() {
		Expect(m.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(m.WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should pause and continue the engine", func() {
		engine.EXPECT().Pause()
		Expect(get("/api/pause").Code).To(Equal(http.StatusOK))

		engine.EXPECT().Continue()
		Expect(get("/api/continue").Code).To(Equal(http.StatusOK))
	})

	It("should tell the current time", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(2e-9))

		rec := get("/api/now")

		var rsp struct {
			Now float64 `json:"now"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Now).To(BeNumerically("~", 2e-9, 1e-12))
	})

	Context("with a core component", func() {
		var comp *core.Comp

		BeforeEach(func() {
			comp = core.MakeBuilder().
				WithEngine(engine).
				BuildComponent("Core")
			m.RegisterComponent(comp)
		})

		It("should list the components", func() {
			rec := get("/api/list_components")

			var names []string
			Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
			Expect(names).To(Equal([]string{"Core"}))
		})

		It("should tick the component", func() {
			engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(0))
			engine.EXPECT().Schedule(gomock.Any()).Do(func(e sim.Event) {
				Expect(e.Handler()).To(BeIdenticalTo(comp.TickingComponent))
			})

			Expect(get("/api/tick/Core").Code).To(Equal(http.StatusOK))
		})

		It("should not find unknown components", func() {
			Expect(get("/api/tick/Other").Code).To(Equal(http.StatusNotFound))
			Expect(get("/api/component/Other").Code).
				To(Equal(http.StatusNotFound))
		})

		It("should reject malformed field requests", func() {
			Expect(get("/api/field/notjson").Code).
				To(Equal(http.StatusBadRequest))
		})
	})

	Context("with an inspectable core", func() {
		It("should serve the snapshot", func() {
			cpu := NewMockInspectable(mockCtrl)
			cpu.EXPECT().Name().Return("Core").AnyTimes()
			cpu.EXPECT().Snapshot().Return(core.Snapshot{
				Name:      "Core",
				Cycle:     3,
				PC:        12,
				Registers: [4]uint32{0, 5, 0, 7},
			})
			m.RegisterCore(cpu)

			rec := get("/api/cpu/Core")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).
				To(Equal("application/json"))

			var s core.Snapshot
			Expect(json.Unmarshal(rec.Body.Bytes(), &s)).To(Succeed())
			Expect(s.PC).To(Equal(uint32(12)))
			Expect(s.Cycle).To(Equal(uint64(3)))
			Expect(s.Registers[3]).To(Equal(uint32(7)))
		})

		It("should not find unknown cores", func() {
			cpu := NewMockInspectable(mockCtrl)
			cpu.EXPECT().Name().Return("Core").AnyTimes()
			m.RegisterCore(cpu)

			Expect(get("/api/cpu/Other").Code).To(Equal(http.StatusNotFound))
		})

		It("should serve a real core", func() {
			c := core.MakeBuilder().Build("Core")
			m.RegisterCore(c)

			rec := get("/api/cpu/Core")

			var s core.Snapshot
			Expect(json.Unmarshal(rec.Body.Bytes(), &s)).To(Succeed())
			Expect(s.Name).To(Equal("Core"))
			Expect(s.Drained).To(BeTrue())
		})
	})

	It("should list and complete progress bars", func() {
		bar := m.CreateProgressBar("cycles", 64)
		bar.IncrementFinished(3)
		m.CreateProgressBar("other", 1)

		rec := get("/api/progress")

		var bars []map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(2))
		Expect(bars[0]["name"]).To(Equal("cycles"))
		Expect(bars[0]["finished"]).To(BeNumerically("==", 3))
		Expect(bars[0]["total"]).To(BeNumerically("==", 64))
		Expect(bars[0]).To(HaveKey("cycles_per_sec"))
		Expect(bar.FinishedCycles()).To(Equal(uint64(3)))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Name).To(Equal("other"))
	})

	It("should serve the monitor page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})
})
