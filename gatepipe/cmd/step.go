package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/isa"
)

var stepCmd = &cobra.Command{
	Use:   "step <program>",
	Short: "Step through a program cycle by cycle in an interactive prompt.",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindCPUFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := isa.ReadProgramFile(args[0])
		if err != nil {
			return err
		}

		cfg, err := coreConfig()
		if err != nil {
			return err
		}

		st := newStepper(cfg, program, newLogger())
		st.out = cmd.OutOrStdout()

		p := prompt.New(
			st.executor,
			st.completer,
			prompt.OptionPrefix("gatepipe> "),
			prompt.OptionTitle("gatepipe"),
			prompt.OptionSetExitCheckerOnInput(func(_ string, breakline bool) bool {
				return breakline && st.quit
			}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlC,
				Fn: func(*prompt.Buffer) {
					os.Exit(0)
				},
			}),
		)
		p.Run()

		return nil
	},
}

func init() {
	addCPUFlags(stepCmd.Flags())
}

var stepperCommands = []prompt.Suggest{
	{Text: "step", Description: "advance n cycles (default 1)"},
	{Text: "regs", Description: "print the register file"},
	{Text: "stages", Description: "print the stage registers"},
	{Text: "mem", Description: "print the data memory word at an address"},
	{Text: "pc", Description: "print the program counter"},
	{Text: "snapshot", Description: "print the full state as JSON"},
	{Text: "quit", Description: "leave the prompt"},
}

// stepper drives a core from text commands.
type stepper struct {
	core *core.Core
	out  io.Writer
	quit bool
}

func newStepper(cfg core.Config, program []uint32, logger hclog.Logger) *stepper {
	c := core.MakeBuilder().
		WithConfig(cfg).
		WithProgram(program).
		Build("Core")

	if logger.IsDebug() {
		c.AcceptHook(core.NewPipelineLogger(logger.Named("pipeline")))
	}

	return &stepper{core: c, out: os.Stdout}
}

func (s *stepper) executor(line string) {
	s.quit = s.exec(line, s.out)
}

func (s *stepper) completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}

	return prompt.FilterHasPrefix(stepperCommands, d.GetWordBeforeCursor(), true)
}

// exec runs one command line and reports whether the prompt should quit.
func (s *stepper) exec(line string, w io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "step", "s":
		s.step(fields[1:], w)
	case "regs", "r":
		printRegisters(w, s.core.Snapshot())
	case "stages":
		printStages(w, s.core.Snapshot())
	case "mem", "m":
		s.mem(fields[1:], w)
	case "pc":
		fmt.Fprintf(w, "0x%08X\n", s.core.PC())
	case "snapshot":
		if err := printJSON(w, s.core.Snapshot()); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}

	return false
}

func (s *stepper) step(args []string, w io.Writer) {
	n := uint64(1)

	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil || v == 0 {
			fmt.Fprintf(w, "bad cycle count %q\n", args[0])
			return
		}

		n = v
	}

	for i := uint64(0); i < n; i++ {
		s.core.Tick()
	}

	snap := s.core.Snapshot()
	fmt.Fprintf(w, "cycle %d  pc 0x%08X  if/id %s\n",
		snap.Cycle, snap.PC, isa.Disassemble(snap.IFID.Instr))

	if snap.Drained {
		fmt.Fprintln(w, "pipeline drained")
	}
}

func (s *stepper) mem(args []string, w io.Writer) {
	if len(args) != 1 {
		fmt.Fprintln(w, "usage: mem <addr>")
		return
	}

	addr, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		fmt.Fprintf(w, "bad address %q\n", args[0])
		return
	}

	v, err := s.core.MemoryWord(uint32(addr))
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "mem[0x%X] = 0x%08X (%d)\n", addr, v, int32(v))
}
