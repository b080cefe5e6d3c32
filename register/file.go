package register

import (
	"fmt"

	"github.com/sarchlab/gatepipe/logic"
)

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 4

// Index is a 2-bit register index. Index[0] is the most significant bit.
type Index [2]bool

// IndexFromInt converts 0..3 into an index. Higher bits are ignored.
func IndexFromInt(i int) Index {
	return Index{i&2 != 0, i&1 != 0}
}

// IndexFromWord takes the two least significant bits of w.
func IndexFromWord(w logic.Word) Index {
	return Index{w.Bit(1), w.Bit(0)}
}

// Int converts the index into an integer.
func (x Index) Int() int {
	v := 0
	if x[0] {
		v |= 2
	}

	if x[1] {
		v |= 1
	}

	return v
}

// Word places the index in the two least significant bits of a word.
func (x Index) Word() logic.Word {
	return logic.Word{}.WithBit(1, x[0]).WithBit(0, x[1])
}

func (x Index) String() string {
	return fmt.Sprintf("R%d", x.Int())
}

// DecodeIndex is a 2-to-4 decoder. The output with the position of x is equal
// to en and all others are false.
func DecodeIndex(x Index, en bool) [NumRegisters]bool {
	hi, lo := x[0], x[1]

	return [NumRegisters]bool{
		logic.And3(en, logic.Not(hi), logic.Not(lo)),
		logic.And3(en, logic.Not(hi), lo),
		logic.And3(en, hi, logic.Not(lo)),
		logic.And3(en, hi, lo),
	}
}

// File is the register file. None of the registers is hardwired to zero.
type File struct {
	regs [NumRegisters]Reg32
}

// Read returns the committed values of the two addressed registers.
func (f *File) Read(a1, a2 Index) (rd1, rd2 logic.Word) {
	return f.ReadOne(a1), f.ReadOne(a2)
}

// ReadOne returns the committed value of one register through a 4-to-1 mux.
func (f *File) ReadOne(a Index) logic.Word {
	return logic.Mux4Word(
		f.regs[0].Q(), f.regs[1].Q(), f.regs[2].Q(), f.regs[3].Q(),
		[2]bool(a))
}

// Step evaluates all four registers for one phase. Register i loads d when
// we[i] is set.
func (f *File) Step(
	we [NumRegisters]bool,
	d logic.Word,
	clk logic.Phase,
) {
	for i := range f.regs {
		f.regs[i].Step(we[i], d, clk)
	}
}

// Register returns the committed value of register i.
func (f *File) Register(i int) logic.Word {
	return f.regs[i].Q()
}

// Preset stores v in register i.
func (f *File) Preset(i int, v logic.Word) {
	f.regs[i].Preset(v)
}
