// Package memory provides the data memory and the instruction memory of the
// processor.
package memory

import (
	"errors"
	"fmt"
)

// Access errors.
var (
	ErrMisaligned  = errors.New("address is not word aligned")
	ErrOutOfBounds = errors.New("address is beyond the memory capacity")
)

// An AccessError describes a rejected memory access.
type AccessError struct {
	Op   string
	Addr uint64
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s 0x%08X: %v", e.Op, e.Addr, e.Err)
}

// Unwrap returns the error kind.
func (e *AccessError) Unwrap() error {
	return e.Err
}

// A Storage is a byte array that is allocated in units on first write.
//
// The unit is similar to the concept of a page. Units that have never been
// written read as zero and use no memory.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage with the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return NewStorageWithUnitSize(capacity, 1024)
}

// NewStorageWithUnitSize creates a storage that allocates unitSize bytes at
// a time.
func NewStorageWithUnitSize(capacity, unitSize uint64) *Storage {
	if unitSize == 0 {
		panic("unit size must be positive")
	}

	return &Storage{
		unitSize: unitSize,
		capacity: capacity,
		data:     make(map[uint64][]byte),
	}
}

// Capacity returns the number of bytes the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return baseAddr, inUnitAddr
}

func (s *Storage) mustBeInRange(op string, address, length uint64) error {
	if address >= s.capacity || length > s.capacity-address {
		return &AccessError{Op: op, Addr: address, Err: ErrOutOfBounds}
	}

	return nil
}

// Read returns length bytes starting at address.
func (s *Storage) Read(address, length uint64) ([]byte, error) {
	if err := s.mustBeInRange("read", address, length); err != nil {
		return nil, err
	}

	res := make([]byte, length)
	offset := uint64(0)

	for offset < length {
		curr := address + offset
		baseAddr, inUnitAddr := s.parseAddress(curr)
		n := min(length-offset, s.unitSize-inUnitAddr)

		if unit, ok := s.data[baseAddr]; ok {
			copy(res[offset:offset+n], unit[inUnitAddr:inUnitAddr+n])
		}

		offset += n
	}

	return res, nil
}

// Write stores data starting at address.
func (s *Storage) Write(address uint64, data []byte) error {
	length := uint64(len(data))
	if err := s.mustBeInRange("write", address, length); err != nil {
		return err
	}

	offset := uint64(0)

	for offset < length {
		curr := address + offset
		baseAddr, inUnitAddr := s.parseAddress(curr)
		n := min(length-offset, s.unitSize-inUnitAddr)

		unit, ok := s.data[baseAddr]
		if !ok {
			unit = make([]byte, s.unitSize)
			s.data[baseAddr] = unit
		}

		copy(unit[inUnitAddr:inUnitAddr+n], data[offset:offset+n])

		offset += n
	}

	return nil
}
