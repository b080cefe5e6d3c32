package register

import "github.com/sarchlab/gatepipe/logic"

// Reg32 is a 32-bit register. All cells share the load signal and the clock.
type Reg32 struct {
	cells [logic.WordWidth]Cell
}

// Step evaluates the register for one phase. When load is low, every cell is
// fed its own Q, so the commit keeps the stored value.
func (r *Reg32) Step(load bool, d logic.Word, clk logic.Phase) logic.Word {
	var q logic.Word
	stepCells(r.cells[:], load, d[:], clk, q[:])

	return q
}

// Q returns the committed value.
func (r *Reg32) Q() logic.Word {
	var q logic.Word
	readCells(r.cells[:], q[:])

	return q
}

// Preset stores v by running a full load cycle. It is meant to initialize the
// register before simulation starts.
func (r *Reg32) Preset(v logic.Word) {
	for _, p := range logic.Phases {
		r.Step(true, v, p)
	}
}

// Reg8 is an 8-bit register.
type Reg8 struct {
	cells [logic.ByteWidth]Cell
}

// Step evaluates the register for one phase.
func (r *Reg8) Step(load bool, d logic.Byte, clk logic.Phase) logic.Byte {
	var q logic.Byte
	stepCells(r.cells[:], load, d[:], clk, q[:])

	return q
}

// Q returns the committed value.
func (r *Reg8) Q() logic.Byte {
	var q logic.Byte
	readCells(r.cells[:], q[:])

	return q
}

// Preset stores v by running a full load cycle.
func (r *Reg8) Preset(v logic.Byte) {
	for _, p := range logic.Phases {
		r.Step(true, v, p)
	}
}

func stepCells(
	cells []Cell,
	load bool,
	d []bool,
	clk logic.Phase,
	q []bool,
) {
	for i := range cells {
		in := logic.Mux(cells[i].Q(), d[i], load)
		q[i] = cells[i].Step(clk, in)
	}
}

func readCells(cells []Cell, q []bool) {
	for i := range cells {
		q[i] = cells[i].Q()
	}
}
