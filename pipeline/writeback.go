package pipeline

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/register"
)

// Writeback runs the writeback stage. All four registers of the file are
// stepped every phase and at most one of them sees load=1.
func Writeback(
	memwb *MEMWB,
	rf RegisterFile,
	clk logic.Phase,
) WritebackWires {
	wb := decoder.UnpackWB(memwb.WBSignals.Q())
	data := logic.MuxWord(memwb.ALUResult.Q(), memwb.MemReadData.Q(),
		wb.DataSrcToReg)
	dest := register.IndexFromWord(memwb.WriteRegIdx.Q())
	we := register.DecodeIndex(dest, wb.RegWrite)

	rf.Step(we, data, clk)

	return WritebackWires{
		Data:    data,
		Dest:    dest,
		Enables: we,
	}
}
