package memory

import "github.com/sarchlab/gatepipe/logic"

// DefaultInstructionMemoryWords is the number of words in the instruction
// memory.
const DefaultInstructionMemoryWords = 256

// InstructionMemory holds the program. It is written once before the
// simulation starts and is read-only afterwards.
type InstructionMemory struct {
	words  []uint32
	loaded int
}

// NewInstructionMemory creates an instruction memory with capacity words.
func NewInstructionMemory(capacity int) *InstructionMemory {
	return &InstructionMemory{
		words: make([]uint32, capacity),
	}
}

// Load writes the program starting at word 0 and clears the rest. Words past
// the capacity are dropped. It returns the number of words stored.
func (m *InstructionMemory) Load(program []uint32) int {
	clear(m.words)
	m.loaded = copy(m.words, program)

	return m.loaded
}

// Read returns the word at addr/4. Words beyond the capacity read as NOP.
func (m *InstructionMemory) Read(addr logic.Word) logic.Word {
	index := uint64(addr.Uint32() >> 2)
	if index >= uint64(len(m.words)) {
		return logic.Word{}
	}

	return logic.WordFromUint32(m.words[index])
}

// Loaded returns the number of program words stored by the last Load.
func (m *InstructionMemory) Loaded() int {
	return m.loaded
}

// Capacity returns the number of words the memory can hold.
func (m *InstructionMemory) Capacity() int {
	return len(m.words)
}

// Word returns word i for inspection.
func (m *InstructionMemory) Word(i int) uint32 {
	return m.words[i]
}
