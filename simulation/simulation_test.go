package simulation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/datarecording"
	"github.com/sarchlab/gatepipe/isa"
)

func sumProgram() []uint32 {
	nop := []uint32{isa.NOP, isa.NOP, isa.NOP}

	var p []uint32
	p = append(p, isa.Addi(1, 0, 10))
	p = append(p, nop...)
	p = append(p, isa.Addi(2, 0, 20))
	p = append(p, nop...)
	p = append(p, isa.Add(3, 1, 2))
	p = append(p, nop...)
	p = append(p, isa.Sw(3, 100, 0))
	p = append(p, nop...)
	p = append(p, isa.Lw(2, 100, 0))

	return p
}

var _ = Describe("Simulation", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should run until the pipeline is drained", func() {
		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram(sumProgram()).
			Build()

		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.Monitor()).To(BeNil())
		Expect(s.Run()).To(Succeed())

		Expect(s.Core().Registers()).To(Equal([4]uint32{0, 10, 30, 30}))
		Expect(s.Core().Drained()).To(BeTrue())

		st := s.Stats()
		Expect(st.Cycles).To(Equal(uint64(21)))
		Expect(st.Retired).To(Equal(uint64(5)))
		Expect(st.Squashed).To(Equal(uint64(0)))
		Expect(st.StallCycles).To(Equal(uint64(0)))
		Expect(st.CPI).To(BeNumerically("~", 4.2, 1e-9))
		Expect(st.AvgInstCycles).To(BeNumerically("~", 4, 1e-6))
		Expect(st.MaxInstCycles).To(BeNumerically("~", 4, 1e-6))
	})

	It("should stop at the cycle limit", func() {
		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram(sumProgram()).
			WithMaxCycles(8).
			Build()

		Expect(s.Run()).To(Succeed())
		Expect(s.Stats().Cycles).To(Equal(uint64(8)))
		Expect(s.Core().Register(3)).To(Equal(uint32(0)))
	})

	It("should count squashed instructions", func() {
		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram([]uint32{
				isa.Beq(1, 1, 2),
				isa.Addi(2, 0, 1),
				isa.Addi(2, 0, 99),
				isa.Addi(3, 0, 7),
			}).
			Build()

		Expect(s.Run()).To(Succeed())

		st := s.Stats()
		Expect(st.Squashed).To(Equal(uint64(2)))
		Expect(st.Retired).To(Equal(uint64(2)))
		Expect(s.Core().Register(2)).To(Equal(uint32(0)))
		Expect(s.Core().Register(3)).To(Equal(uint32(7)))
	})

	It("should count stalls", func() {
		cfg := core.DefaultConfig()
		cfg.StallOnDataHazard = true

		s := MakeBuilder().
			WithoutMonitoring().
			WithConfig(cfg).
			WithProgram([]uint32{isa.Addi(1, 0, 1), isa.Add(2, 1, 1)}).
			Build()

		Expect(s.Run()).To(Succeed())
		Expect(s.Stats().StallCycles).To(Equal(uint64(3)))
		Expect(s.Core().Register(2)).To(Equal(uint32(2)))
	})

	It("should write the trace as CSV", func() {
		path := filepath.Join(dir, "trace.csv")

		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram(sumProgram()).
			WithTraceCSV(path).
			Build()

		Expect(s.Run()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		Expect(lines).To(HaveLen(6))
		Expect(lines[0]).To(HavePrefix("ID,ParentID,Kind"))
		Expect(string(data)).To(ContainSubstring("ADDI R1, R0, 10"))
	})

	It("should share one database for the trace and the cycle records", func() {
		base := filepath.Join(dir, "run")

		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram(sumProgram()).
			WithTraceSQLite(base + ".sqlite3").
			WithCycleRecording(base).
			Build()

		Expect(s.RecordingPaths()).To(Equal([]string{base}))
		Expect(s.Run()).To(Succeed())

		reader := datarecording.NewReader(base + ".sqlite3")
		defer reader.Close()

		reader.MapTable("cycles", core.CycleRecord{})
		rows, total, err := reader.Query(context.Background(), "cycles",
			datarecording.QueryParams{Where: "Cycle = ?", Args: []any{12}})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(1))
		Expect(rows[0].(*core.CycleRecord).R3).To(Equal(uint32(30)))

		_, total, err = reader.Query(context.Background(), "cycles",
			datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(21))
	})

	It("should log the cycles at debug level", func() {
		buf := new(bytes.Buffer)
		logger := hclog.New(&hclog.LoggerOptions{
			Name:   "gatepipe",
			Level:  hclog.Debug,
			Output: buf,
		})

		s := MakeBuilder().
			WithoutMonitoring().
			WithProgram(sumProgram()).
			WithLogger(logger).
			Build()

		Expect(s.Run()).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("gatepipe.pipeline: cycle:"))
		Expect(out).To(ContainSubstring("simulation finished"))
		Expect(out).NotTo(ContainSubstring("gatepipe.engine"))
	})

	It("should refuse a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should refuse to run forever", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithUntilDrained(false).
				Build()
		}).To(Panic())
	})
})
