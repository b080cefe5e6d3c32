package core

import (
	"github.com/sarchlab/gatepipe/memory"
)

// Config holds the behavior switches of a core.
type Config struct {
	// FlushClearsPCPlus4 makes an ID/EX flush zero the latched PC+4. By default
	// PC+4 passes through a flush.
	FlushClearsPCPlus4 bool `json:"flush_clears_pc_plus4" yaml:"flush_clears_pc_plus4" mapstructure:"flush_clears_pc_plus4"`

	// StallOnDataHazard holds the fetch and decode stages while an older
	// instruction still has to write a register that IF/ID reads.
	StallOnDataHazard bool `json:"stall_on_data_hazard" yaml:"stall_on_data_hazard" mapstructure:"stall_on_data_hazard"`

	// ResolveJumps lets J redirect the fetch.
	ResolveJumps bool `json:"resolve_jumps" yaml:"resolve_jumps" mapstructure:"resolve_jumps"`

	// ExceptionVector is the fetch address selected by the exception PC
	// source.
	ExceptionVector uint32 `json:"exception_vector" yaml:"exception_vector" mapstructure:"exception_vector"`

	// DataMemorySize is the data memory size in bytes.
	DataMemorySize uint64 `json:"data_memory_size" yaml:"data_memory_size" mapstructure:"data_memory_size"`

	// InstructionMemoryWords is the instruction memory capacity in words.
	InstructionMemoryWords int `json:"instruction_memory_words" yaml:"instruction_memory_words" mapstructure:"instruction_memory_words"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ResolveJumps:           true,
		DataMemorySize:         memory.DefaultDataMemorySize,
		InstructionMemoryWords: memory.DefaultInstructionMemoryWords,
	}
}
