// Package logic provides the boolean building blocks of the processor: gates,
// multiplexers, fixed-width buses, and the two-phase clock.
//
// Every higher-level circuit in gatepipe is composed of the functions in this
// package. NOT, AND and OR are the only primitives; all other gates are built
// from them.
package logic

// Not inverts a signal.
func Not(a bool) bool {
	return !a
}

// And returns true if both inputs are true.
func And(a, b bool) bool {
	return a && b
}

// Or returns true if any of the inputs is true.
func Or(a, b bool) bool {
	return a || b
}

// Nand is NOT(AND(a, b)).
func Nand(a, b bool) bool {
	return Not(And(a, b))
}

// Nor is NOT(OR(a, b)).
func Nor(a, b bool) bool {
	return Not(Or(a, b))
}

// Xor is AND(OR(a, b), NAND(a, b)).
func Xor(a, b bool) bool {
	return And(Or(a, b), Nand(a, b))
}

// Xnor is NOT(XOR(a, b)).
func Xnor(a, b bool) bool {
	return Not(Xor(a, b))
}

// And3 is a three-input AND gate.
func And3(a, b, c bool) bool {
	return And(And(a, b), c)
}

// Or3 is a three-input OR gate.
func Or3(a, b, c bool) bool {
	return Or(Or(a, b), c)
}

// AndAll reduces the input signals with AND gates. It returns true for an
// empty input.
func AndAll(in ...bool) bool {
	out := true
	for _, s := range in {
		out = And(out, s)
	}

	return out
}

// OrAll reduces the input signals with OR gates. It returns false for an empty
// input.
func OrAll(in ...bool) bool {
	out := false
	for _, s := range in {
		out = Or(out, s)
	}

	return out
}
