package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run <program>",
	Short: "Run a program until it drains or reaches the cycle limit.",
	Long: `Run assembles or reads the program file and runs it on one core. ` +
		`Lines may hold assembly or 0x-prefixed machine words.`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		fs := cmd.Flags()
		bindCPUFlags(fs)
		mustBind("run.max_cycles", fs.Lookup("max-cycles"))
		mustBind("run.until_drained", fs.Lookup("until-drained"))
		mustBind("trace.csv", fs.Lookup("trace-csv"))
		mustBind("trace.sqlite", fs.Lookup("trace-sqlite"))
		mustBind("record.sqlite", fs.Lookup("record-sqlite"))
		mustBind("monitor.enable", fs.Lookup("monitor"))
		mustBind("monitor.port", fs.Lookup("monitor-port"))
		mustBind("monitor.open_browser", fs.Lookup("open-browser"))
	},
	RunE: runProgram,
}

func init() {
	fs := runCmd.Flags()
	addCPUFlags(fs)
	fs.Uint64("max-cycles", 64, "stop after this many cycles, 0 for no limit")
	fs.Bool("until-drained", true, "stop once the pipeline holds only bubbles")
	fs.String("trace-csv", "", "write instruction traces into a CSV file")
	fs.String("trace-sqlite", "", "write instruction traces into a SQLite file")
	fs.String("record-sqlite", "", "record every cycle into a SQLite file")
	fs.Bool("monitor", false, "serve the monitor while running")
	fs.Int("monitor-port", 0, "port of the monitor, 0 picks a free port")
	fs.Bool("open-browser", false, "open the monitor in a browser")
	fs.Bool("json", false, "print the result as JSON")
	fs.Bool("hold", false, "keep the monitor up after the run until interrupted")
}

func runProgram(cmd *cobra.Command, args []string) error {
	program, err := isa.ReadProgramFile(args[0])
	if err != nil {
		return err
	}

	cfg, err := coreConfig()
	if err != nil {
		return err
	}

	maxCycles := viper.GetUint64("run.max_cycles")
	untilDrained := viper.GetBool("run.until_drained")

	if maxCycles == 0 && !untilDrained {
		return errors.New("run needs --max-cycles or --until-drained")
	}

	freq := coreFreq()
	if freq <= 0 {
		return errors.New("cpu.freq_mhz must be positive")
	}

	logger := newLogger()

	b := simulation.MakeBuilder().
		WithConfig(cfg).
		WithProgram(program).
		WithFreq(freq).
		WithMaxCycles(maxCycles).
		WithUntilDrained(untilDrained).
		WithTraceCSV(viper.GetString("trace.csv")).
		WithTraceSQLite(viper.GetString("trace.sqlite")).
		WithCycleRecording(viper.GetString("record.sqlite")).
		WithLogger(logger)

	if viper.GetBool("monitor.enable") {
		b = b.WithMonitorPort(viper.GetInt("monitor.port")).
			WithOpenBrowser(viper.GetBool("monitor.open_browser"))
	} else {
		b = b.WithoutMonitoring()
	}

	s := b.Build()

	if url := s.MonitorURL(); url != "" {
		logger.Info("monitor started", "url", url)
	}

	if err := s.Run(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	snap := s.Core().Snapshot()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := printJSON(out, runResult{Snapshot: snap, Stats: s.Stats()}); err != nil {
			return err
		}
	} else {
		printRegisters(out, snap)
		fmt.Fprintln(out)
		printStages(out, snap)
		fmt.Fprintln(out)
		printStats(out, s.Stats())
	}

	hold, _ := cmd.Flags().GetBool("hold")
	if hold && s.MonitorURL() != "" {
		logger.Info("holding the monitor, press Ctrl-C to exit", "url", s.MonitorURL())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
	}

	s.Terminate()

	return nil
}
