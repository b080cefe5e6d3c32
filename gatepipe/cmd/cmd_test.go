package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/gatepipe/isa"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

	return path
}

// resetFlags undoes the flags of earlier executions of the shared commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		Expect(f.Value.Set(f.DefValue)).To(Succeed())
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(args ...string) (string, error) {
	resetFlags(rootCmd)

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

var _ = Describe("Commands", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should print the version", func() {
		out, err := execute("version")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("gatepipe dev\n"))
	})

	It("should disassemble a program", func() {
		out := new(bytes.Buffer)

		printDisassembly(out, []uint32{isa.Addi(1, 0, 10), isa.Nop()})

		Expect(out.String()).To(Equal(
			"0x00000000: 0x2001000A  ADDI R1, R0, 10\n" +
				"0x00000004: 0x00000000  NOP\n"))
	})

	It("should assemble a source file", func() {
		path := writeFile(dir, "prog.s", "ADDI R1, R0, 10\nNOP\n")

		out, err := execute("asm", path)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("0x2001000A\n0x00000000\n"))
	})

	It("should fail on a bad source file", func() {
		path := writeFile(dir, "bad.s", "MUL R1, R2, R3\n")

		_, err := execute("disasm", path)

		Expect(err).To(HaveOccurred())
	})

	It("should run a program and print JSON", func() {
		path := writeFile(dir, "sum.s", sumSource)

		out, err := execute("run", path, "--json", "--log-level", "error")
		Expect(err).NotTo(HaveOccurred())

		var result runResult
		Expect(json.Unmarshal([]byte(out), &result)).To(Succeed())
		Expect(result.Stats.Cycles).To(Equal(uint64(21)))
		Expect(result.Stats.Retired).To(Equal(uint64(5)))
		Expect(result.Snapshot.Registers).To(Equal([4]uint32{0, 10, 30, 30}))
		Expect(result.Snapshot.Drained).To(BeTrue())
	})

	It("should need a stop condition", func() {
		path := writeFile(dir, "sum.s", sumSource)

		_, err := execute("run", path, "--max-cycles", "0", "--until-drained=false")

		Expect(err).To(MatchError(ContainSubstring("--max-cycles")))
	})

	It("should stop at the cycle limit", func() {
		path := writeFile(dir, "sum.s", sumSource)

		out, err := execute("run", path, "--json", "--log-level", "error",
			"--max-cycles", "8")
		Expect(err).NotTo(HaveOccurred())

		var result runResult
		Expect(json.Unmarshal([]byte(out), &result)).To(Succeed())
		Expect(result.Stats.Cycles).To(Equal(uint64(8)))
		Expect(result.Snapshot.Drained).To(BeFalse())
	})

	It("should record a run and print the records", func() {
		path := writeFile(dir, "sum.s", sumSource)
		db := filepath.Join(dir, "run")

		_, err := execute("run", path, "--log-level", "error",
			"--record-sqlite", db)
		Expect(err).NotTo(HaveOccurred())

		out, err := execute("records", db, "--from", "12", "--to", "13")
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		Expect(lines).To(HaveLen(4))
		Expect(lines[0]).To(HavePrefix(" cycle"))
		Expect(lines[1]).To(HavePrefix("    12 0x00000034 SW   R3, 100(R0)"))
		Expect(lines[3]).To(Equal("2 of 2 rows"))
	})

	It("should fail on a missing record file", func() {
		_, err := execute("records", filepath.Join(dir, "none"))

		Expect(err).To(HaveOccurred())
	})

	It("should check the built-in scenarios", func() {
		out, err := execute("check", "--builtin")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("PASS end-to-end"))
		Expect(out).To(ContainSubstring("4 scenarios, 0 failed"))
	})

	It("should require a scenario", func() {
		_, err := execute("check")

		Expect(err).To(MatchError(ContainSubstring("no scenario given")))
	})
})

var _ = Describe("checkScenarios", func() {
	It("should report failing scenarios", func() {
		dir := GinkgoT().TempDir()
		path := writeFile(dir, "wrong.yaml", `
name: wrong
program:
  - ADDI R1, R0, 1
cycles: 5
expect:
  registers:
    R1: 2
`)
		out := new(bytes.Buffer)

		err := checkScenarios(out, []string{path}, false)

		Expect(err).To(MatchError(errScenariosFailed))
		Expect(out.String()).To(ContainSubstring("FAIL wrong"))
		Expect(out.String()).To(ContainSubstring("1 scenarios, 1 failed"))
	})

	It("should return load errors", func() {
		err := checkScenarios(new(bytes.Buffer), []string{"/no/such/file.yaml"}, false)

		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(errScenariosFailed))
	})
})

var _ = Describe("recordQuery", func() {
	It("should select from a cycle", func() {
		q := recordQuery(3, -1, 0)

		Expect(q.Where).To(Equal("Cycle >= ?"))
		Expect(q.Args).To(Equal([]any{uint64(3)}))
		Expect(q.OrderBy).To(Equal("Cycle ASC"))
	})

	It("should select a range with a limit", func() {
		q := recordQuery(3, 9, 2)

		Expect(q.Where).To(Equal("Cycle >= ? AND Cycle <= ?"))
		Expect(q.Args).To(Equal([]any{uint64(3), int64(9)}))
		Expect(q.Limit).To(Equal(2))
	})
})
