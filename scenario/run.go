package scenario

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/isa"
)

// DrainLimit bounds runs that wait for the pipeline to drain.
const DrainLimit = 100000

// A Check is one compared value.
type Check struct {
	What string `json:"what"`
	Want string `json:"want"`
	Got  string `json:"got"`
	Pass bool   `json:"pass"`
}

// Report is the outcome of a scenario.
type Report struct {
	Name   string  `json:"name"`
	Cycles uint64  `json:"cycles"`
	Checks []Check `json:"checks"`
}

// Passed tells if every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}

	return true
}

// Failures returns the failed checks.
func (r *Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Pass {
			out = append(out, c)
		}
	}

	return out
}

// Print writes one line per check, and a summary line.
func (r *Report) Print(w io.Writer) {
	for _, c := range r.Checks {
		mark := "ok  "
		if !c.Pass {
			mark = "FAIL"
		}

		fmt.Fprintf(w, "  %s %-24s want %-20s got %s\n", mark, c.What, c.Want, c.Got)
	}

	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}

	fmt.Fprintf(w, "%s %s (%d cycles, %d checks)\n",
		status, r.Name, r.Cycles, len(r.Checks))
}

func (r *Report) add(what string, want, got uint32) {
	r.Checks = append(r.Checks, Check{
		What: what,
		Want: fmt.Sprintf("0x%08X", want),
		Got:  fmt.Sprintf("0x%08X", got),
		Pass: want == got,
	})
}

func (r *Report) addInst(what string, want, got uint32) {
	r.Checks = append(r.Checks, Check{
		What: what,
		Want: isa.Disassemble(want),
		Got:  isa.Disassemble(got),
		Pass: want == got,
	})
}

// Build creates the core of a scenario with the preloads applied.
func Build(s *Scenario) (*core.Core, error) {
	program, err := isa.AssembleLines(s.Program)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", s.Name)
	}

	c := core.MakeBuilder().
		WithConfig(s.CoreConfig()).
		WithProgram(program).
		Build(s.Name)

	for name, v := range s.Registers {
		i, err := parseRegister(name)
		if err != nil {
			return nil, err
		}

		c.PresetRegister(i, v)
	}

	for addr, v := range s.Memory {
		if err := c.PresetMemoryWord(addr, v); err != nil {
			return nil, errors.Wrapf(err, "presetting memory of %s", s.Name)
		}
	}

	return c, nil
}

// Run executes the scenario and compares the state against its expectations.
// Errors are reserved for scenarios that cannot run.
func Run(s *Scenario) (*Report, error) {
	c, err := Build(s)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: s.Name}

	checkpoints := make(map[uint64][]Checkpoint)
	for _, cp := range s.Expect.Checkpoints {
		checkpoints[cp.Cycle] = append(checkpoints[cp.Cycle], cp)
	}

	for !finished(s, c) {
		c.Tick()

		for _, cp := range checkpoints[c.CycleCount()-1] {
			checkCheckpoint(report, c, cp)
		}
	}

	report.Cycles = c.CycleCount()

	for _, cp := range s.Expect.Checkpoints {
		if cp.Cycle >= report.Cycles {
			report.Checks = append(report.Checks, Check{
				What: fmt.Sprintf("cycle %d: reached", cp.Cycle),
				Want: "yes",
				Got:  fmt.Sprintf("stopped after %d cycles", report.Cycles),
			})
		}
	}

	checkFinal(report, c, s.Expect)

	return report, nil
}

func finished(s *Scenario, c *core.Core) bool {
	if s.Cycles > 0 {
		return c.CycleCount() >= s.Cycles
	}

	return c.Drained() || c.CycleCount() >= DrainLimit
}

func checkCheckpoint(r *Report, c *core.Core, cp Checkpoint) {
	prefix := fmt.Sprintf("cycle %d: ", cp.Cycle)

	if cp.PC != nil {
		r.add(prefix+"pc", *cp.PC, c.PC())
	}

	if cp.IFIDInstr != nil {
		want, _ := isa.Assemble(*cp.IFIDInstr)
		r.addInst(prefix+"if/id", want, c.IFID().Instr)
	}
}

func checkFinal(r *Report, c *core.Core, e Expectation) {
	names := make([]string, 0, len(e.Registers))
	for name := range e.Registers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		i, _ := parseRegister(name)
		r.add(fmt.Sprintf("R%d", i), e.Registers[name], c.Register(i))
	}

	addrs := make([]uint32, 0, len(e.Memory))
	for addr := range e.Memory {
		addrs = append(addrs, addr)
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, addr := range addrs {
		what := fmt.Sprintf("mem[0x%X]", addr)

		got, err := c.MemoryWord(addr)
		if err != nil {
			r.Checks = append(r.Checks, Check{
				What: what,
				Want: fmt.Sprintf("0x%08X", e.Memory[addr]),
				Got:  err.Error(),
			})

			continue
		}

		r.add(what, e.Memory[addr], got)
	}

	if e.PC != nil {
		r.add("pc", *e.PC, c.PC())
	}
}
