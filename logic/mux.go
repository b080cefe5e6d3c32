package logic

// Mux is a 2-to-1 multiplexer. It returns b when sel is set, otherwise a.
func Mux(a, b, sel bool) bool {
	return Or(And(Not(sel), a), And(sel, b))
}

// MuxByte applies Mux to every bit of two bytes.
func MuxByte(a, b Byte, sel bool) Byte {
	var out Byte
	muxBits(a[:], b[:], sel, out[:])

	return out
}

// MuxWord applies Mux to every bit of two words.
func MuxWord(a, b Word, sel bool) Word {
	var out Word
	muxBits(a[:], b[:], sel, out[:])

	return out
}

// Mux4Word selects one of four words with a 2-bit select signal. sel[0] is the
// most significant select bit. The selection is built from 2-to-1 muxes.
func Mux4Word(in0, in1, in2, in3 Word, sel [2]bool) Word {
	low := MuxWord(in0, in2, sel[0])
	high := MuxWord(in1, in3, sel[0])

	return MuxWord(low, high, sel[1])
}

func muxBits(a, b []bool, sel bool, out []bool) {
	for i := range out {
		out[i] = Mux(a[i], b[i], sel)
	}
}
