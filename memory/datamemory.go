package memory

import (
	"github.com/sarchlab/gatepipe/logic"
)

// DefaultDataMemorySize is the size of the data memory in bytes.
const DefaultDataMemorySize = 4096

// WordSize is the number of bytes in a word.
const WordSize = 4

// ByteEnable selects the bytes of a word that a store updates. Element 0
// controls the most significant byte.
type ByteEnable [WordSize]bool

// FullWord enables all four bytes.
var FullWord = ByteEnable{true, true, true, true}

// ByteEnableFromMask converts a 4-bit mask. Bit 3 controls the most
// significant byte.
func ByteEnableFromMask(m uint8) ByteEnable {
	return ByteEnable{m&8 != 0, m&4 != 0, m&2 != 0, m&1 != 0}
}

// DataMemory is a byte-addressable memory accessed in aligned words. Words
// are stored big-endian.
type DataMemory struct {
	storage *Storage
}

// NewDataMemory creates a data memory with size bytes.
func NewDataMemory(size uint64) *DataMemory {
	return &DataMemory{
		storage: NewStorageWithUnitSize(size, 256),
	}
}

// Size returns the capacity in bytes.
func (m *DataMemory) Size() uint64 {
	return m.storage.Capacity()
}

func (m *DataMemory) check(op string, addr logic.Word) error {
	a := uint64(addr.Uint32())

	misaligned := logic.Or(addr.Bit(1), addr.Bit(0))
	if misaligned {
		return &AccessError{Op: op, Addr: a, Err: ErrMisaligned}
	}

	if a >= m.Size() || WordSize > m.Size()-a {
		return &AccessError{Op: op, Addr: a, Err: ErrOutOfBounds}
	}

	return nil
}

// Read returns the word at addr. Misaligned or out-of-range addresses read
// as zero and return an error. Reading never changes the memory.
func (m *DataMemory) Read(addr logic.Word) (logic.Word, error) {
	if err := m.check("read", addr); err != nil {
		return logic.Word{}, err
	}

	raw, err := m.storage.Read(uint64(addr.Uint32()), WordSize)
	if err != nil {
		return logic.Word{}, err
	}

	var w logic.Word
	for i, b := range raw {
		w = w.WithByte(i, logic.ByteFromUint8(b))
	}

	return w, nil
}

// Write stores the enabled bytes of data at addr. The memory changes only when
// both we and the clock are high. The address is checked on every call, and
// a rejected access changes nothing.
func (m *DataMemory) Write(
	addr, data logic.Word,
	be ByteEnable,
	we bool,
	clk logic.Phase,
) error {
	if err := m.check("write", addr); err != nil {
		return err
	}

	commit := logic.And(we, clk.Level())
	if !commit {
		return nil
	}

	old, err := m.Read(addr)
	if err != nil {
		return err
	}

	raw := make([]byte, WordSize)
	for i := 0; i < WordSize; i++ {
		b := logic.MuxByte(old.Byte(i), data.Byte(i), logic.And(commit, be[i]))
		raw[i] = b.Uint8()
	}

	return m.storage.Write(uint64(addr.Uint32()), raw)
}

// ReadWord is Read on integers.
func (m *DataMemory) ReadWord(addr uint32) (uint32, error) {
	w, err := m.Read(logic.WordFromUint32(addr))
	return w.Uint32(), err
}

// Preset stores a full word outside of the clocked protocol. It is meant to
// initialize memory before simulation starts.
func (m *DataMemory) Preset(addr, v uint32) error {
	return m.Write(logic.WordFromUint32(addr), logic.WordFromUint32(v),
		FullWord, true, logic.Commit)
}
