package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gatepipe/isa"
)

var asmCmd = &cobra.Command{
	Use:   "asm <source>",
	Short: "Assemble a source file into machine words.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := isa.ReadProgramFile(args[0])
		if err != nil {
			return err
		}

		printWords(cmd.OutOrStdout(), program)

		return nil
	},
}

func printWords(w io.Writer, program []uint32) {
	for _, inst := range program {
		fmt.Fprintf(w, "0x%08X\n", inst)
	}
}
