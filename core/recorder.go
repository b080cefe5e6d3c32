package core

import (
	"github.com/sarchlab/gatepipe/datarecording"
	"github.com/sarchlab/gatepipe/sim"
)

// CycleRecord is one row of the cycle table.
type CycleRecord struct {
	Core        string
	Cycle       uint64
	PC          uint32
	IFInstr     uint32
	IDInstr     uint32
	EXALUResult uint32
	MEMAddr     uint32
	WBData      uint32
	R0          uint32
	R1          uint32
	R2          uint32
	R3          uint32
	PCSource    string
	IFIDFlush   bool
	IDEXFlush   bool
	Stall       bool
	ReadFault   bool
	WriteFault  bool
}

// CycleRecorder is a hook that stores one CycleRecord per cycle.
type CycleRecorder struct {
	recorder datarecording.DataRecorder
	table    string
}

// NewCycleRecorder creates a CycleRecorder that writes into a new table.
func NewCycleRecorder(
	recorder datarecording.DataRecorder,
	table string,
) *CycleRecorder {
	recorder.CreateTable(table, CycleRecord{})

	return &CycleRecorder{
		recorder: recorder,
		table:    table,
	}
}

// Func records the cycle.
func (r *CycleRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosCycleEnd {
		return
	}

	s := ctx.Item.(Snapshot)
	w := ctx.Detail.(Wires)

	r.recorder.InsertData(r.table, CycleRecord{
		Core:        s.Name,
		Cycle:       s.Cycle - 1,
		PC:          s.PC,
		IFInstr:     w.Fetch.Instr.Uint32(),
		IDInstr:     w.Decode.Instr.Uint32(),
		EXALUResult: w.Execute.ALUResult.Uint32(),
		MEMAddr:     s.MEMWB.ALUResult,
		WBData:      w.Writeback.Data.Uint32(),
		R0:          s.Registers[0],
		R1:          s.Registers[1],
		R2:          s.Registers[2],
		R3:          s.Registers[3],
		PCSource:    w.Execute.PCSource.String(),
		IFIDFlush:   w.Hazard.IFIDFlush,
		IDEXFlush:   w.Hazard.IDEXFlush,
		Stall:       w.Hazard.Stall,
		ReadFault:   w.Memory.ReadFault,
		WriteFault:  w.Memory.WriteFault,
	})
}
