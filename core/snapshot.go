package core

import (
	"github.com/sarchlab/gatepipe/pipeline"
	"github.com/sarchlab/gatepipe/register"
)

// HazardState is the hazard unit output of a cycle.
type HazardState struct {
	PCSource    string `json:"pc_source"`
	BranchTaken bool   `json:"branch_taken"`
	JumpTaken   bool   `json:"jump_taken"`
	Stall       bool   `json:"stall"`
	IFIDFlush   bool   `json:"if_id_flush"`
	IDEXFlush   bool   `json:"id_ex_flush"`
}

// Snapshot is the committed state of a core between two cycles.
type Snapshot struct {
	Name        string                        `json:"name"`
	Cycle       uint64                        `json:"cycle"`
	PC          uint32                        `json:"pc"`
	Registers   [register.NumRegisters]uint32 `json:"registers"`
	IFID        pipeline.IFIDValue            `json:"if_id"`
	IDEX        pipeline.IDEXValue            `json:"id_ex"`
	EXMEM       pipeline.EXMEMValue           `json:"ex_mem"`
	MEMWB       pipeline.MEMWBValue           `json:"mem_wb"`
	Hazard      HazardState                   `json:"hazard"`
	ReadFaults  uint64                        `json:"read_faults"`
	WriteFaults uint64                        `json:"write_faults"`
	Drained     bool                          `json:"drained"`
}

// Snapshot captures the committed state. Hazard is the output of the last
// cycle.
func (c *Core) Snapshot() Snapshot {
	h := c.wires.Hazard

	return Snapshot{
		Name:      c.name,
		Cycle:     c.cycle,
		PC:        c.PC(),
		Registers: c.Registers(),
		IFID:      c.IFID(),
		IDEX:      c.IDEX(),
		EXMEM:     c.EXMEM(),
		MEMWB:     c.MEMWB(),
		Hazard: HazardState{
			PCSource:    c.wires.Execute.PCSource.String(),
			BranchTaken: h.BranchTaken,
			JumpTaken:   h.JumpTaken,
			Stall:       h.Stall,
			IFIDFlush:   h.IFIDFlush,
			IDEXFlush:   h.IDEXFlush,
		},
		ReadFaults:  c.readFaults,
		WriteFaults: c.writeFaults,
		Drained:     c.Drained(),
	}
}
