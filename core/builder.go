package core

import (
	"log"

	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/memory"
	"github.com/sarchlab/gatepipe/pipeline"
	"github.com/sarchlab/gatepipe/sim"
)

// Builder can build cores.
type Builder struct {
	config       Config
	program      []uint32
	engine       sim.Engine
	freq         sim.Freq
	maxCycles    uint64
	untilDrained bool
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		config:       DefaultConfig(),
		freq:         1 * sim.GHz,
		untilDrained: true,
	}
}

// WithConfig sets the configuration of the core.
func (b Builder) WithConfig(c Config) Builder {
	b.config = c
	return b
}

// WithProgram sets the program loaded into the instruction memory.
func (b Builder) WithProgram(program []uint32) Builder {
	b.program = program
	return b
}

// WithEngine sets the engine that drives the ticking component.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the clock frequency of the ticking component.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// WithMaxCycles stops the ticking component after n cycles. Zero means no
// limit.
func (b Builder) WithMaxCycles(n uint64) Builder {
	b.maxCycles = n
	return b
}

// WithUntilDrained sets whether the ticking component stops once the pipeline
// is drained.
func (b Builder) WithUntilDrained(v bool) Builder {
	b.untilDrained = v
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	b.configMustBeValid()

	c := &Core{
		name:            name,
		config:          b.config,
		im:              memory.NewInstructionMemory(b.config.InstructionMemoryWords),
		dm:              memory.NewDataMemory(b.config.DataMemorySize),
		exceptionVector: logic.WordFromUint32(b.config.ExceptionVector),
		hazard: pipeline.HazardUnit{
			StallOnDataHazard: b.config.StallOnDataHazard,
		},
	}
	c.idex.FlushClearsPCPlus4 = b.config.FlushClearsPCPlus4
	c.exmem.ResolveJumps = b.config.ResolveJumps
	c.im.Load(b.program)

	return c
}

// BuildComponent creates a core wrapped in a ticking component.
func (b Builder) BuildComponent(name string) *Comp {
	if b.engine == nil {
		log.Panic("engine is required to build a core component")
	}

	c := &Comp{
		Core:         b.Build(name),
		MaxCycles:    b.maxCycles,
		UntilDrained: b.untilDrained,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) configMustBeValid() {
	if b.config.InstructionMemoryWords <= 0 {
		log.Panic("instruction memory must hold at least one word")
	}

	if b.config.DataMemorySize < memory.WordSize {
		log.Panic("data memory must hold at least one word")
	}
}
