// Package scenario loads YAML test scenarios, runs them on a core and checks
// the final and intermediate state against expectations.
package scenario

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/register"
)

// A Scenario describes a program, the state it starts from and the state it
// must reach.
type Scenario struct {
	Name      string            `yaml:"name"`
	Config    ConfigOverrides   `yaml:"config"`
	Registers map[string]uint32 `yaml:"registers"`
	Memory    map[uint32]uint32 `yaml:"memory"`
	Program   []string          `yaml:"program"`

	// Cycles is the number of cycles to run. Zero runs until the pipeline is
	// drained.
	Cycles uint64 `yaml:"cycles"`

	Expect Expectation `yaml:"expect"`
}

// ConfigOverrides change the default core configuration. Unset fields keep
// their defaults.
type ConfigOverrides struct {
	FlushClearsPCPlus4 *bool   `yaml:"flush_clears_pc_plus4"`
	StallOnDataHazard  *bool   `yaml:"stall_on_data_hazard"`
	ResolveJumps       *bool   `yaml:"resolve_jumps"`
	ExceptionVector    *uint32 `yaml:"exception_vector"`
}

// Expectation is the state checked after the run.
type Expectation struct {
	Registers   map[string]uint32 `yaml:"registers"`
	Memory      map[uint32]uint32 `yaml:"memory"`
	PC          *uint32           `yaml:"pc"`
	Checkpoints []Checkpoint      `yaml:"checkpoints"`
}

// A Checkpoint is checked right after the cycle with the given index, counting
// from 0.
type Checkpoint struct {
	Cycle     uint64  `yaml:"cycle"`
	PC        *uint32 `yaml:"pc"`
	IFIDInstr *string `yaml:"ifid_instr"`
}

// Parse decodes a scenario. Unknown fields are errors.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load reads the scenario stored at path. A scenario without a name is named
// after its file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario")
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	if s.Name == "" {
		s.Name = path
	}

	return s, nil
}

func (s *Scenario) validate() error {
	if len(s.Program) == 0 {
		return errors.New("scenario has no program")
	}

	for _, regs := range []map[string]uint32{s.Registers, s.Expect.Registers} {
		for name := range regs {
			if _, err := parseRegister(name); err != nil {
				return err
			}
		}
	}

	for _, cp := range s.Expect.Checkpoints {
		if s.Cycles > 0 && cp.Cycle >= s.Cycles {
			return errors.Errorf("checkpoint at cycle %d is past the last cycle %d",
				cp.Cycle, s.Cycles-1)
		}

		if cp.IFIDInstr != nil {
			if _, err := isa.Assemble(*cp.IFIDInstr); err != nil {
				return errors.Wrapf(err, "checkpoint at cycle %d", cp.Cycle)
			}
		}
	}

	return nil
}

// CoreConfig returns the default configuration with the overrides applied.
func (s *Scenario) CoreConfig() core.Config {
	cfg := core.DefaultConfig()
	o := s.Config

	if o.FlushClearsPCPlus4 != nil {
		cfg.FlushClearsPCPlus4 = *o.FlushClearsPCPlus4
	}

	if o.StallOnDataHazard != nil {
		cfg.StallOnDataHazard = *o.StallOnDataHazard
	}

	if o.ResolveJumps != nil {
		cfg.ResolveJumps = *o.ResolveJumps
	}

	if o.ExceptionVector != nil {
		cfg.ExceptionVector = *o.ExceptionVector
	}

	return cfg
}

// parseRegister turns "R2" or "r2" into 2.
func parseRegister(name string) (int, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(upper, "R") {
		return 0, errors.Errorf("bad register name %q", name)
	}

	i, err := strconv.Atoi(upper[1:])
	if err != nil || i < 0 || i >= register.NumRegisters {
		return 0, errors.Errorf("bad register name %q", name)
	}

	return i, nil
}
