package isa

import (
	"os"

	"github.com/pkg/errors"
)

// ReadProgramFile assembles the program stored at path. Lines may mix
// assembly and raw hexadecimal words.
func ReadProgramFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening program")
	}
	defer f.Close()

	words, err := AssembleProgram(f)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling %s", path)
	}

	return words, nil
}
