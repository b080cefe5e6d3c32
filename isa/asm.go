package isa

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyLine is returned by Assemble when a line holds no instruction.
var ErrEmptyLine = errors.New("empty line")

type operandKind int

const (
	reg operandKind = iota
	imm16
	addr26
)

type format struct {
	operands []operandKind
	build    func(args []uint32) uint32
}

func rFormat(funct uint32) format {
	return format{
		operands: []operandKind{reg, reg, reg},
		build: func(a []uint32) uint32 {
			return EncodeR(a[1], a[2], a[0], 0, funct)
		},
	}
}

func memFormat(op uint32) format {
	return format{
		operands: []operandKind{reg, imm16, reg},
		build: func(a []uint32) uint32 {
			return EncodeI(op, a[2], a[0], int32(a[1]))
		},
	}
}

var formats = map[string]format{
	"ADD": rFormat(FunctADD),
	"SUB": rFormat(FunctSUB),
	"AND": rFormat(FunctAND),
	"OR":  rFormat(FunctOR),
	"SLT": rFormat(FunctSLT),
	"ADDI": {
		operands: []operandKind{reg, reg, imm16},
		build: func(a []uint32) uint32 {
			return EncodeI(OpADDI, a[1], a[0], int32(a[2]))
		},
	},
	"LW": memFormat(OpLW),
	"SW": memFormat(OpSW),
	"BEQ": {
		operands: []operandKind{reg, reg, imm16},
		build: func(a []uint32) uint32 {
			return EncodeI(OpBEQ, a[0], a[1], int32(a[2]))
		},
	},
	"J": {
		operands: []operandKind{addr26},
		build: func(a []uint32) uint32 {
			return EncodeJ(OpJ, a[0])
		},
	},
	"NOP": {
		build: func([]uint32) uint32 { return NOP },
	},
}

// Assemble translates one line into an instruction word. It accepts the
// syntax produced by Disassemble, a bare hexadecimal word, or ".word <value>".
// Text after '#', ';' or "//" is ignored.
func Assemble(line string) (uint32, error) {
	fields := tokenize(stripComment(line))
	if len(fields) == 0 {
		return 0, ErrEmptyLine
	}

	mnemonic := strings.ToUpper(fields[0])
	args := fields[1:]

	if mnemonic == ".WORD" {
		if len(args) != 1 {
			return 0, errors.Errorf(".word takes one value, got %d", len(args))
		}

		return parseWord(args[0])
	}

	if len(args) == 0 && strings.HasPrefix(mnemonic, "0X") {
		return parseWord(fields[0])
	}

	f, ok := formats[mnemonic]
	if !ok {
		return 0, errors.Errorf("unknown mnemonic %q", fields[0])
	}

	if len(args) != len(f.operands) {
		return 0, errors.Errorf("%s takes %d operands, got %d",
			mnemonic, len(f.operands), len(args))
	}

	values := make([]uint32, len(args))
	for i, kind := range f.operands {
		v, err := parseOperand(args[i], kind)
		if err != nil {
			return 0, errors.Wrapf(err, "operand %d of %s", i+1, mnemonic)
		}

		values[i] = v
	}

	return f.build(values), nil
}

// AssembleProgram translates every non-empty line read from r. Errors carry
// the line number.
func AssembleProgram(r io.Reader) ([]uint32, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		w, err := Assemble(scanner.Text())
		if errors.Is(err, ErrEmptyLine) {
			continue
		}

		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}

		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading program")
	}

	return words, nil
}

// AssembleLines is AssembleProgram over an in-memory list of lines.
func AssembleLines(lines []string) ([]uint32, error) {
	return AssembleProgram(strings.NewReader(strings.Join(lines, "\n")))
}

func stripComment(line string) string {
	for _, marker := range []string{"#", ";", "//"} {
		if i := strings.Index(line, marker); i >= 0 {
			line = line[:i]
		}
	}

	return line
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ' ', '\t', ',', '(', ')':
			return true
		default:
			return false
		}
	})
}

func parseOperand(s string, kind operandKind) (uint32, error) {
	switch kind {
	case reg:
		return parseRegister(s)
	case imm16:
		return parseImmediate(s)
	default:
		return parseAddress(s)
	}
}

func parseRegister(s string) (uint32, error) {
	u := strings.ToUpper(s)
	if !strings.HasPrefix(u, "R") && !strings.HasPrefix(u, "$") {
		return 0, errors.Errorf("%q is not a register", s)
	}

	n, err := strconv.ParseUint(u[1:], 10, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "register %q", s)
	}

	if n > 3 {
		return 0, errors.Errorf("register %q does not exist, use R0 to R3", s)
	}

	return uint32(n), nil
}

func parseImmediate(s string) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "immediate %q", s)
	}

	if v < -0x8000 || v > 0xFFFF {
		return 0, errors.Errorf("immediate %q does not fit in 16 bits", s)
	}

	return uint32(v), nil
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "address %q", s)
	}

	if v > 0x03FFFFFF {
		return 0, errors.Errorf("address %q does not fit in 26 bits", s)
	}

	return uint32(v), nil
}

func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "word %q", s)
	}

	return uint32(v), nil
}
