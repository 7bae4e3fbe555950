package fu

import "github.com/sarchlab/tilesim/cgra"

// ThreeMulAluShifter chains a multiplier, an adder and a shifter in one
// cycle. Operands 0 and 1 are multiplied, operand 2 is added or subtracted
// and operand 3 is the shift amount.
type ThreeMulAluShifter struct {
	width int
}

// NewThreeMulAluShifter creates the fused unit.
func NewThreeMulAluShifter(width int) *ThreeMulAluShifter {
	return &ThreeMulAluShifter{width: width}
}

// Name returns the name of the unit.
func (t *ThreeMulAluShifter) Name() string {
	return "ThreeMulAluShifter"
}

// Supports tells if the unit implements the opcode.
func (t *ThreeMulAluShifter) Supports(op cgra.Opcode) bool {
	_, ok := t.numOperands(op)
	return ok
}

func (t *ThreeMulAluShifter) numOperands(op cgra.Opcode) (int, bool) {
	switch op {
	case cgra.OptMulAdd, cgra.OptMulSub:
		return 3, true
	case cgra.OptMulAddLLS, cgra.OptMulSubLLS, cgra.OptMulSubLRS:
		return 4, true
	default:
		return 0, false
	}
}

// Compute runs the fused operation.
func (t *ThreeMulAluShifter) Compute(
	op cgra.Opcode,
	ops []cgra.Data,
) (cgra.Data, bool) {
	n, ok := t.numOperands(op)
	if !ok || !allValid(ops, n) {
		return cgra.Invalid(), true
	}

	mask := cgra.WidthMask(t.width)
	product := (ops[0].Value * ops[1].Value) & mask
	c := ops[2].Value & mask

	var v uint32

	switch op {
	case cgra.OptMulAdd:
		v = product + c
	case cgra.OptMulSub:
		v = product - c
	case cgra.OptMulAddLLS:
		v = ((product + c) & mask) << ops[3].Value
	case cgra.OptMulSubLLS:
		v = ((product - c) & mask) << ops[3].Value
	case cgra.OptMulSubLRS:
		v = ((product - c) & mask) >> ops[3].Value
	}

	return result(v, t.width), true
}

// Retire does nothing.
func (t *ThreeMulAluShifter) Retire() {}
