package logic

import (
	"fmt"
	"strings"
)

// WordWidth is the number of signals in a Word.
const WordWidth = 32

// ByteWidth is the number of signals in a Byte.
const ByteWidth = 8

// A Word is a 32-signal bus. Index 0 is the most significant bit.
type Word [WordWidth]bool

// A Byte is an 8-signal bus. Index 0 is the most significant bit.
type Byte [ByteWidth]bool

// WordFromUint32 drives a word with the bits of v.
func WordFromUint32(v uint32) Word {
	var w Word
	for i := 0; i < WordWidth; i++ {
		w[WordWidth-1-i] = v&(1<<uint(i)) != 0
	}

	return w
}

// Uint32 converts the word to an unsigned integer.
func (w Word) Uint32() uint32 {
	var v uint32
	for i := 0; i < WordWidth; i++ {
		if w[WordWidth-1-i] {
			v |= 1 << uint(i)
		}
	}

	return v
}

// Int32 interprets the word as a two's-complement integer.
func (w Word) Int32() int32 {
	return int32(w.Uint32())
}

// Bit returns the signal at logical bit position n, where bit 0 is the least
// significant bit.
func (w Word) Bit(n int) bool {
	return w[WordWidth-1-n]
}

// WithBit returns a copy of the word with logical bit n set to s.
func (w Word) WithBit(n int, s bool) Word {
	w[WordWidth-1-n] = s
	return w
}

// Byte returns the i-th byte of the word. Byte 0 is the most significant one.
func (w Word) Byte(i int) Byte {
	var b Byte
	copy(b[:], w[i*ByteWidth:(i+1)*ByteWidth])

	return b
}

// WithByte returns a copy of the word with the i-th byte replaced.
func (w Word) WithByte(i int, b Byte) Word {
	copy(w[i*ByteWidth:(i+1)*ByteWidth], b[:])
	return w
}

// IsZero tells if no signal of the word is set. It is a NOR over all 32 bits.
func (w Word) IsZero() bool {
	return Not(OrAll(w[:]...))
}

// String prints the word in hexadecimal.
func (w Word) String() string {
	return fmt.Sprintf("0x%08X", w.Uint32())
}

// Binary prints the word as 32 binary digits, most significant bit first.
func (w Word) Binary() string {
	return bitsString(w[:])
}

// AndWord gates every bit of the word with en.
func AndWord(w Word, en bool) Word {
	for i := range w {
		w[i] = And(w[i], en)
	}

	return w
}

// ShiftLeft2 shifts the word left by two positions, filling with zeros.
func ShiftLeft2(w Word) Word {
	var out Word
	copy(out[:], w[2:])

	return out
}

// ByteFromUint8 drives a byte with the bits of v.
func ByteFromUint8(v uint8) Byte {
	var b Byte
	for i := 0; i < ByteWidth; i++ {
		b[ByteWidth-1-i] = v&(1<<uint(i)) != 0
	}

	return b
}

// Uint8 converts the byte to an unsigned integer.
func (b Byte) Uint8() uint8 {
	var v uint8
	for i := 0; i < ByteWidth; i++ {
		if b[ByteWidth-1-i] {
			v |= 1 << uint(i)
		}
	}

	return v
}

// String prints the byte in hexadecimal.
func (b Byte) String() string {
	return fmt.Sprintf("0x%02X", b.Uint8())
}

// Binary prints the byte as 8 binary digits, most significant bit first.
func (b Byte) Binary() string {
	return bitsString(b[:])
}

func bitsString(bits []bool) string {
	sb := strings.Builder{}
	for _, s := range bits {
		if s {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
