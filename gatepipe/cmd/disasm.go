package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gatepipe/isa"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <program>",
	Short: "Print the program with one disassembled word per line.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := isa.ReadProgramFile(args[0])
		if err != nil {
			return err
		}

		printDisassembly(cmd.OutOrStdout(), program)

		return nil
	},
}

func printDisassembly(w io.Writer, program []uint32) {
	for i, inst := range program {
		fmt.Fprintf(w, "0x%08X: 0x%08X  %s\n", i*4, inst, isa.Disassemble(inst))
	}
}
