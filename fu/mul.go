package fu

import "github.com/sarchlab/tilesim/cgra"

// Mul is a single-cycle multiplier.
type Mul struct {
	width int
}

// NewMul creates a Mul that works on width-bit payloads.
func NewMul(width int) *Mul {
	return &Mul{width: width}
}

// Name returns the name of the unit.
func (m *Mul) Name() string {
	return "Mul"
}

// Supports tells if the Mul implements the opcode.
func (m *Mul) Supports(op cgra.Opcode) bool {
	return op == cgra.OptMul
}

// Compute multiplies operands 0 and 1.
func (m *Mul) Compute(op cgra.Opcode, ops []cgra.Data) (cgra.Data, bool) {
	if op != cgra.OptMul || !allValid(ops, 2) {
		return cgra.Invalid(), true
	}

	return result(ops[0].Value*ops[1].Value, m.width), true
}

// Retire does nothing.
func (m *Mul) Retire() {}
