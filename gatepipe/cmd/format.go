package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/isa"
	"github.com/sarchlab/gatepipe/simulation"
)

func printRegisters(w io.Writer, s core.Snapshot) {
	for i, v := range s.Registers {
		fmt.Fprintf(w, "R%d = 0x%08X (%d)\n", i, v, int32(v))
	}
}

func printStages(w io.Writer, s core.Snapshot) {
	fmt.Fprintf(w, "cycle %d  pc 0x%08X  pc_src %s\n",
		s.Cycle, s.PC, s.Hazard.PCSource)
	fmt.Fprintf(w, "IF/ID   %-22s pc+4=0x%08X\n",
		isa.Disassemble(s.IFID.Instr), s.IFID.PCPlus4)
	fmt.Fprintf(w, "ID/EX   rs=R%d(0x%08X) rt=R%d(0x%08X) rd=R%d imm=0x%08X reg_write=%t\n",
		s.IDEX.Rs, s.IDEX.ReadData1, s.IDEX.Rt, s.IDEX.ReadData2,
		s.IDEX.Rd, s.IDEX.ImmExt, s.IDEX.Signals.RegWrite)
	fmt.Fprintf(w, "EX/MEM  alu=0x%08X data=0x%08X dst=R%d read=%t write=%t\n",
		s.EXMEM.ALUResult, s.EXMEM.WriteData, s.EXMEM.WriteReg,
		s.EXMEM.Mem.MemRead, s.EXMEM.Mem.MemWrite)
	fmt.Fprintf(w, "MEM/WB  alu=0x%08X mem=0x%08X dst=R%d reg_write=%t\n",
		s.MEMWB.ALUResult, s.MEMWB.MemReadData, s.MEMWB.WriteReg,
		s.MEMWB.WB.RegWrite)
}

func printStats(w io.Writer, st simulation.Stats) {
	fmt.Fprintf(w, "cycles        %d\n", st.Cycles)
	fmt.Fprintf(w, "retired       %d\n", st.Retired)
	fmt.Fprintf(w, "squashed      %d\n", st.Squashed)
	fmt.Fprintf(w, "stall cycles  %d\n", st.StallCycles)
	fmt.Fprintf(w, "read faults   %d\n", st.ReadFaults)
	fmt.Fprintf(w, "write faults  %d\n", st.WriteFaults)
	fmt.Fprintf(w, "CPI           %.3f\n", st.CPI)
	fmt.Fprintf(w, "avg latency   %.3f cycles\n", st.AvgInstCycles)
	fmt.Fprintf(w, "max latency   %.0f cycles\n", st.MaxInstCycles)
}

type runResult struct {
	Snapshot core.Snapshot    `json:"snapshot"`
	Stats    simulation.Stats `json:"stats"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
