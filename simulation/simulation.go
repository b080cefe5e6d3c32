// Package simulation wires a core, the engine that drives it, and the
// tracers, recorders and monitor that observe it.
package simulation

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/datarecording"
	"github.com/sarchlab/gatepipe/monitoring"
	"github.com/sarchlab/gatepipe/sim"
	"github.com/sarchlab/gatepipe/tracing"
)

// A Simulation runs one core until it drains or reaches its cycle limit.
type Simulation struct {
	id        string
	engine    *sim.SerialEngine
	comp      *core.Comp
	logger    hclog.Logger
	freq      sim.Freq
	maxCycles uint64

	recorders    map[string]datarecording.DataRecorder
	traceWriters []tracing.TraceWriter
	steps        *tracing.StepCountTracer
	latency      *tracing.AverageTimeTracer

	monitor    *monitoring.Monitor
	monitorURL string
}

// Stats summarizes a run.
type Stats struct {
	Cycles      uint64  `json:"cycles"`
	Retired     uint64  `json:"retired"`
	Squashed    uint64  `json:"squashed"`
	StallCycles uint64  `json:"stall_cycles"`
	ReadFaults  uint64  `json:"read_faults"`
	WriteFaults uint64  `json:"write_faults"`
	CPI         float64 `json:"cpi"`

	// AvgInstCycles is the average number of cycles from the fetch of an
	// instruction to its retirement or squash.
	AvgInstCycles float64 `json:"avg_inst_cycles"`
	MaxInstCycles float64 `json:"max_inst_cycles"`
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine of the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// Core returns the simulated core.
func (s *Simulation) Core() *core.Core {
	return s.comp.Core
}

// Component returns the ticking component that drives the core.
func (s *Simulation) Component() *core.Comp {
	return s.comp
}

// Monitor returns the monitor, or nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitor page.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// Run ticks the core until it stops and flushes the traces.
func (s *Simulation) Run() error {
	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar(s.comp.Name(), s.maxCycles)
		s.comp.Core.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
			if ctx.Pos == core.HookPosCycleEnd {
				bar.IncrementFinished(1)
			}
		}))
	}

	s.logger.Info("simulation started",
		"core", s.comp.Name(),
		"program_words", len(s.comp.Core.ProgramWords()))

	s.comp.TickNow()
	err := s.engine.Run()
	s.engine.Finished()

	s.flush()

	if bar != nil {
		s.monitor.CompleteProgressBar(bar)
	}

	if err != nil {
		return err
	}

	st := s.Stats()
	s.logger.Info("simulation finished",
		"cycles", st.Cycles,
		"retired", st.Retired,
		"squashed", st.Squashed,
		"drained", s.comp.Core.Drained())

	return nil
}

// Stats returns the statistics collected so far.
func (s *Simulation) Stats() Stats {
	snap := s.comp.Core.Snapshot()

	st := Stats{
		Cycles:        snap.Cycle,
		Retired:       s.steps.GetTaskCount("WB"),
		Squashed:      s.steps.GetTaskCount("squashed"),
		StallCycles:   s.steps.GetStepCount("stall"),
		ReadFaults:    snap.ReadFaults,
		WriteFaults:   snap.WriteFaults,
		AvgInstCycles: float64(s.latency.AverageTime()) * float64(s.freq),
		MaxInstCycles: float64(s.latency.MaxTime()) * float64(s.freq),
	}

	if st.Retired > 0 {
		st.CPI = float64(st.Cycles) / float64(st.Retired)
	}

	return st
}

// RecordingPaths returns the base names of the SQLite databases in use.
func (s *Simulation) RecordingPaths() []string {
	paths := make([]string, 0, len(s.recorders))
	for p := range s.recorders {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

func (s *Simulation) flush() {
	for _, w := range s.traceWriters {
		w.Flush()
	}

	for _, r := range s.recorders {
		r.Flush()
	}
}

// Terminate flushes everything that is still buffered.
func (s *Simulation) Terminate() {
	s.flush()
}
