package simulation

import (
	"log"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/rs/xid"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/datarecording"
	"github.com/sarchlab/gatepipe/monitoring"
	"github.com/sarchlab/gatepipe/sim"
	"github.com/sarchlab/gatepipe/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	name         string
	config       core.Config
	program      []uint32
	freq         sim.Freq
	maxCycles    uint64
	untilDrained bool

	traceCSV     string
	traceSQLite  string
	recordSQLite string

	monitorOn   bool
	monitorPort int
	openBrowser bool

	logger hclog.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		name:         "Core",
		config:       core.DefaultConfig(),
		freq:         1 * sim.GHz,
		untilDrained: true,
		monitorOn:    true,
		logger:       hclog.NewNullLogger(),
	}
}

// WithName sets the name of the core.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithConfig sets the configuration of the core.
func (b Builder) WithConfig(c core.Config) Builder {
	b.config = c
	return b
}

// WithProgram sets the program to run.
func (b Builder) WithProgram(program []uint32) Builder {
	b.program = program
	return b
}

// WithFreq sets the clock frequency of the core.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// WithMaxCycles stops the simulation after n cycles. Zero means no limit.
func (b Builder) WithMaxCycles(n uint64) Builder {
	b.maxCycles = n
	return b
}

// WithUntilDrained sets whether the simulation stops once the pipeline is
// drained.
func (b Builder) WithUntilDrained(v bool) Builder {
	b.untilDrained = v
	return b
}

// WithTraceCSV writes the instruction trace into a CSV file.
func (b Builder) WithTraceCSV(path string) Builder {
	b.traceCSV = path
	return b
}

// WithTraceSQLite writes the instruction trace into a SQLite database. The
// ".sqlite3" extension is added to path.
func (b Builder) WithTraceSQLite(path string) Builder {
	b.traceSQLite = strings.TrimSuffix(path, ".sqlite3")
	return b
}

// WithCycleRecording records the state of every cycle into a SQLite
// database. It can share the database of the SQLite trace.
func (b Builder) WithCycleRecording(path string) Builder {
	b.recordSQLite = strings.TrimSuffix(path, ".sqlite3")
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOpenBrowser opens the monitor page when the server starts.
func (b Builder) WithOpenBrowser(open bool) Builder {
	b.openBrowser = open
	return b
}

// WithLogger sets the logger. At debug level every cycle is logged, and at
// trace level every event.
func (b Builder) WithLogger(logger hclog.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		log.Panic("monitor port cannot be set when monitoring is disabled")
	}

	if b.maxCycles == 0 && !b.untilDrained {
		log.Panic("the simulation needs a cycle limit or to run until drained")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:        xid.New().String(),
		engine:    sim.NewSerialEngine(),
		logger:    b.logger,
		freq:      b.freq,
		maxCycles: b.maxCycles,
	}

	s.comp = core.MakeBuilder().
		WithConfig(b.config).
		WithProgram(b.program).
		WithEngine(s.engine).
		WithFreq(b.freq).
		WithMaxCycles(b.maxCycles).
		WithUntilDrained(b.untilDrained).
		BuildComponent(b.name)

	b.attachStats(s)
	b.attachTracers(s)
	b.attachRecorder(s)
	b.attachLoggers(s)

	if b.monitorOn {
		b.startMonitor(s)
	}

	return s
}

func (b Builder) attachStats(s *Simulation) {
	filter := tracing.KindFilter("inst")

	s.steps = tracing.NewStepCountTracer(filter)
	tracing.CollectTrace(s.comp.Core, s.steps)

	s.latency = tracing.NewAverageTimeTracer(s.engine, filter)
	tracing.CollectTrace(s.comp.Core, s.latency)
}

func (b Builder) attachTracers(s *Simulation) {
	if b.traceCSV != "" {
		w := tracing.NewCSVTraceWriter(b.traceCSV)
		w.Init()
		s.traceWriters = append(s.traceWriters, w)
	}

	if b.traceSQLite != "" {
		w := tracing.NewDBTraceWriter(s.recorderFor(b.traceSQLite), "trace")
		w.Init()
		s.traceWriters = append(s.traceWriters, w)
	}

	for _, w := range s.traceWriters {
		t := tracing.NewWriterTracer(s.engine, tracing.AllTasks, w)
		tracing.CollectTrace(s.comp.Core, t)
	}
}

// CycleTable is the table that holds the cycle records.
const CycleTable = "cycles"

func (b Builder) attachRecorder(s *Simulation) {
	if b.recordSQLite == "" {
		return
	}

	r := core.NewCycleRecorder(s.recorderFor(b.recordSQLite), CycleTable)
	s.comp.Core.AcceptHook(r)
}

func (b Builder) attachLoggers(s *Simulation) {
	if b.logger.IsDebug() {
		s.comp.Core.AcceptHook(core.NewPipelineLogger(b.logger.Named("pipeline")))
	}

	if b.logger.IsTrace() {
		s.engine.AcceptHook(sim.NewEventLogger(b.logger.Named("engine")))
	}
}

func (b Builder) startMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.WithOpenBrowser(b.openBrowser)
	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterComponent(s.comp)
	s.monitor.RegisterCore(s.comp.Core)
	s.monitorURL = s.monitor.StartServer()
}

// recorderFor returns the data recorder writing into path, creating one if
// needed.
func (s *Simulation) recorderFor(path string) datarecording.DataRecorder {
	if s.recorders == nil {
		s.recorders = make(map[string]datarecording.DataRecorder)
	}

	if r, ok := s.recorders[path]; ok {
		return r
	}

	r := datarecording.New(path)
	s.recorders[path] = r

	return r
}
