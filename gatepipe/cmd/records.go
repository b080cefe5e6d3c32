package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/datarecording"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/simulation"
)

var recordsCmd = &cobra.Command{
	Use:   "records <db>",
	Short: "Print the cycle records of a recorded run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetUint64("from")
		to, _ := cmd.Flags().GetInt64("to")
		limit, _ := cmd.Flags().GetInt("limit")

		path := args[0]
		if !strings.HasSuffix(path, ".sqlite3") {
			path += ".sqlite3"
		}

		if _, err := os.Stat(path); err != nil {
			return err
		}

		reader := datarecording.NewReader(path)
		defer reader.Close()

		return printRecords(cmd.Context(), cmd.OutOrStdout(), reader,
			recordQuery(from, to, limit))
	},
}

func init() {
	recordsCmd.Flags().Uint64("from", 0, "first cycle to print")
	recordsCmd.Flags().Int64("to", -1, "last cycle to print, -1 for the end")
	recordsCmd.Flags().Int("limit", 0, "print at most this many rows, 0 for all")
}

func recordQuery(from uint64, to int64, limit int) datarecording.QueryParams {
	q := datarecording.QueryParams{
		Where:   "Cycle >= ?",
		Args:    []any{from},
		OrderBy: "Cycle ASC",
		Limit:   limit,
	}

	if to >= 0 {
		q.Where += " AND Cycle <= ?"
		q.Args = append(q.Args, to)
	}

	return q
}

func printRecords(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
	q datarecording.QueryParams,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader.MapTable(simulation.CycleTable, core.CycleRecord{})

	rows, total, err := reader.Query(ctx, simulation.CycleTable, q)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%6s %10s %-22s %-22s %10s %10s %10s %10s %10s %10s %-9s %s\n",
		"cycle", "pc", "if", "id", "alu", "wb", "R0", "R1", "R2", "R3",
		"pc_src", "flags")

	for _, row := range rows {
		r := row.(*core.CycleRecord)
		fmt.Fprintf(w,
			"%6d 0x%08X %-22s %-22s 0x%08X 0x%08X 0x%08X 0x%08X 0x%08X 0x%08X %-9s %s\n",
			r.Cycle, r.PC,
			isa.Disassemble(r.IFInstr), isa.Disassemble(r.IDInstr),
			r.EXALUResult, r.WBData,
			r.R0, r.R1, r.R2, r.R3,
			r.PCSource, recordFlags(r))
	}

	fmt.Fprintf(w, "%d of %d rows\n", len(rows), total)

	return nil
}

func recordFlags(r *core.CycleRecord) string {
	var flags []string

	if r.Stall {
		flags = append(flags, "stall")
	}

	if r.IFIDFlush || r.IDEXFlush {
		flags = append(flags, "flush")
	}

	if r.ReadFault {
		flags = append(flags, "read_fault")
	}

	if r.WriteFault {
		flags = append(flags, "write_fault")
	}

	if len(flags) == 0 {
		return "-"
	}

	return strings.Join(flags, ",")
}
