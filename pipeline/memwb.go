package pipeline

import (
	"github.com/sarchlab/gatepipe/decoder"
	"github.com/sarchlab/gatepipe/logic"
	"github.com/sarchlab/gatepipe/memory"
	"github.com/sarchlab/gatepipe/register"
)

// MEMWB is the register between memory and writeback. It has no flush input;
// a bubble arrives as all-zero control bits.
type MEMWB struct {
	WBSignals   register.Reg32
	MemReadData register.Reg32
	ALUResult   register.Reg32
	WriteRegIdx register.Reg32
}

// MEMWBValue is the committed content of MEM/WB.
type MEMWBValue struct {
	WB          decoder.WBSignals `json:"wb"`
	MemReadData uint32            `json:"mem_read_data"`
	ALUResult   uint32            `json:"alu_result"`
	WriteReg    int               `json:"write_reg"`
}

// Value returns the committed content.
func (r *MEMWB) Value() MEMWBValue {
	return MEMWBValue{
		WB:          decoder.UnpackWB(r.WBSignals.Q()),
		MemReadData: r.MemReadData.Q().Uint32(),
		ALUResult:   r.ALUResult.Q().Uint32(),
		WriteReg:    register.IndexFromWord(r.WriteRegIdx.Q()).Int(),
	}
}

// PendingWrite returns the register the latched instruction will write.
func (r *MEMWB) PendingWrite() Writer {
	return Writer{
		RegWrite: decoder.UnpackWB(r.WBSignals.Q()).RegWrite,
		Dest:     register.IndexFromWord(r.WriteRegIdx.Q()),
	}
}

// Step runs the memory stage and feeds MEM/WB. The memory is read at the ALU
// result on every call. The store is gated by mem_write and the clock inside
// the memory.
func (r *MEMWB) Step(
	exmem *EXMEM,
	dm DataPort,
	be memory.ByteEnable,
	clk logic.Phase,
) MemoryWires {
	m := decoder.UnpackMem(exmem.MemSignals.Q())
	addr := exmem.ALUResult.Q()

	data, readErr := dm.Read(addr)
	writeErr := dm.Write(addr, exmem.WriteData.Q(), be, m.MemWrite, clk)

	r.WBSignals.Step(true, exmem.WBSignals.Q(), clk)
	r.MemReadData.Step(true, data, clk)
	r.ALUResult.Step(true, addr, clk)
	r.WriteRegIdx.Step(true, exmem.WriteRegIdx.Q(), clk)

	return MemoryWires{
		ReadData:   data,
		ReadFault:  logic.And(m.MemRead, readErr != nil),
		WriteFault: logic.And(m.MemWrite, writeErr != nil),
		ReadErr:    readErr,
		WriteErr:   writeErr,
	}
}
