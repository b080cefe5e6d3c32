package scenario_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatepipe/scenario"
)

func parse(text string) (*scenario.Scenario, error) {
	return scenario.Parse(strings.NewReader(text))
}

var _ = Describe("Scenario", func() {
	Context("when parsing", func() {
		It("should read every field", func() {
			s, err := parse(`
name: sample
config:
  stall_on_data_hazard: true
  exception_vector: 0x80
registers:
  R1: 5
memory:
  0x10: 7
program:
  - ADDI R2, R1, 1
  - "0x00000000"
cycles: 6
expect:
  registers:
    r2: 6
  pc: 24
  checkpoints:
    - cycle: 0
      pc: 4
`)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name).To(Equal("sample"))
			Expect(s.Registers).To(HaveKeyWithValue("R1", uint32(5)))
			Expect(s.Memory).To(HaveKeyWithValue(uint32(0x10), uint32(7)))
			Expect(s.Program).To(HaveLen(2))
			Expect(s.Cycles).To(Equal(uint64(6)))
			Expect(*s.Expect.PC).To(Equal(uint32(24)))
			Expect(s.Expect.Checkpoints).To(HaveLen(1))

			cfg := s.CoreConfig()
			Expect(cfg.StallOnDataHazard).To(BeTrue())
			Expect(cfg.ExceptionVector).To(Equal(uint32(0x80)))
			Expect(cfg.ResolveJumps).To(BeTrue())
			Expect(cfg.FlushClearsPCPlus4).To(BeFalse())
		})

		DescribeTable("should reject bad scenarios",
			func(text string) {
				_, err := parse(text)
				Expect(err).To(HaveOccurred())
			},
			Entry("unknown field", "name: x\nprogram: [NOP]\nbogus: 1\n"),
			Entry("no program", "name: x\n"),
			Entry("bad register", "program: [NOP]\nregisters: {X1: 1}\n"),
			Entry("register out of range", "program: [NOP]\nexpect: {registers: {R4: 1}}\n"),
			Entry("checkpoint past the end",
				"program: [NOP]\ncycles: 2\nexpect: {checkpoints: [{cycle: 2}]}\n"),
			Entry("bad checkpoint instruction",
				"program: [NOP]\nexpect: {checkpoints: [{cycle: 0, ifid_instr: FOO}]}\n"),
		)

		It("should name a scenario after its file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "s.yaml")
			Expect(os.WriteFile(path, []byte("program: [NOP]\n"), 0o644)).
				To(Succeed())

			s, err := scenario.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name).To(Equal(path))
		})

		It("should report missing files", func() {
			_, err := scenario.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when running", func() {
		It("should pass every built-in scenario", func() {
			scenarios := scenario.Builtin()
			Expect(scenarios).NotTo(BeEmpty())

			for _, s := range scenarios {
				report, err := scenario.Run(s)
				Expect(err).NotTo(HaveOccurred())
				Expect(report.Failures()).To(BeEmpty(), s.Name)
				Expect(report.Passed()).To(BeTrue())
			}
		})

		It("should ship the reference scenarios", func() {
			var names []string
			for _, s := range scenario.Builtin() {
				names = append(names, s.Name)
			}

			Expect(names).To(ContainElements("end-to-end", "branch-redirect"))
		})

		It("should check the branch redirection cycle by cycle", func() {
			var branch *scenario.Scenario
			for _, s := range scenario.Builtin() {
				if s.Name == "branch-redirect" {
					branch = s
				}
			}

			report, err := scenario.Run(branch)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Cycles).To(Equal(uint64(10)))

			var whats []string
			for _, c := range report.Checks {
				whats = append(whats, c.What)
			}

			Expect(whats).To(ContainElements(
				"cycle 0: pc", "cycle 0: if/id",
				"cycle 2: pc", "cycle 2: if/id",
				"R2", "R3"))
		})

		It("should report failed expectations", func() {
			s, err := parse(`
name: wrong
program:
  - ADDI R1, R0, 3
cycles: 5
expect:
  registers:
    R1: 4
  memory:
    0x2: 0
`)
			Expect(err).NotTo(HaveOccurred())

			report, err := scenario.Run(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Passed()).To(BeFalse())

			failures := report.Failures()
			Expect(failures).To(HaveLen(2))
			Expect(failures[0].What).To(Equal("R1"))
			Expect(failures[0].Got).To(Equal("0x00000003"))
			Expect(failures[1].What).To(Equal("mem[0x2]"))
		})

		It("should run until drained without a cycle count", func() {
			s, err := parse(`
name: drain
program:
  - ADDI R1, R0, 3
expect:
  registers:
    R1: 3
  checkpoints:
    - cycle: 50
`)
			Expect(err).NotTo(HaveOccurred())

			report, err := scenario.Run(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Cycles).To(Equal(uint64(5)))

			failures := report.Failures()
			Expect(failures).To(HaveLen(1))
			Expect(failures[0].What).To(Equal("cycle 50: reached"))
		})

		It("should fail on programs that do not assemble", func() {
			s := &scenario.Scenario{Name: "bad", Program: []string{"FOO R1"}}

			_, err := scenario.Run(s)
			Expect(err).To(HaveOccurred())
		})

		It("should fail on misaligned memory preloads", func() {
			s := &scenario.Scenario{
				Name:    "bad",
				Program: []string{"NOP"},
				Memory:  map[uint32]uint32{3: 1},
			}

			_, err := scenario.Run(s)
			Expect(err).To(HaveOccurred())
		})

		It("should print the report", func() {
			report := &scenario.Report{
				Name:   "sample",
				Cycles: 3,
				Checks: []scenario.Check{
					{What: "R1", Want: "0x1", Got: "0x1", Pass: true},
					{What: "R2", Want: "0x2", Got: "0x0"},
				},
			}

			buf := new(bytes.Buffer)
			report.Print(buf)

			out := buf.String()
			Expect(out).To(ContainSubstring("ok   R1"))
			Expect(out).To(ContainSubstring("FAIL R2"))
			Expect(out).To(HaveSuffix("FAIL sample (3 cycles, 2 checks)\n"))
		})
	})
})
