package fu

import "github.com/sarchlab/tilesim/cgra"

// Alu is the basic arithmetic-logic unit.
type Alu struct {
	width int
}

// NewAlu creates an Alu that works on width-bit payloads.
func NewAlu(width int) *Alu {
	return &Alu{width: width}
}

// Name returns the name of the unit.
func (a *Alu) Name() string {
	return "Alu"
}

// Supports tells if the Alu implements the opcode.
func (a *Alu) Supports(op cgra.Opcode) bool {
	switch op {
	case cgra.OptAdd, cgra.OptInc, cgra.OptSub,
		cgra.OptLLS, cgra.OptLRS,
		cgra.OptOr, cgra.OptXor, cgra.OptAnd, cgra.OptNot,
		cgra.OptEq, cgra.OptLe, cgra.OptPhi:
		return true
	default:
		return false
	}
}

// Compute runs the opcode on the operands. The Alu never stalls.
func (a *Alu) Compute(op cgra.Opcode, ops []cgra.Data) (cgra.Data, bool) {
	switch op {
	case cgra.OptPhi:
		return a.phi(ops), true
	case cgra.OptInc, cgra.OptNot:
		return a.unary(op, ops), true
	case cgra.OptAdd, cgra.OptSub, cgra.OptLLS, cgra.OptLRS,
		cgra.OptOr, cgra.OptXor, cgra.OptAnd, cgra.OptEq, cgra.OptLe:
		return a.binary(op, ops), true
	default:
		return cgra.Invalid(), true
	}
}

// Retire does nothing, the Alu keeps no per-slot state.
func (a *Alu) Retire() {}

// phi forwards the first valid one of operands 0 and 1.
func (a *Alu) phi(ops []cgra.Data) cgra.Data {
	for i := 0; i < 2; i++ {
		if d := operand(ops, i); d.Pred {
			return d.Masked(a.width)
		}
	}

	return cgra.Invalid()
}

func (a *Alu) unary(op cgra.Opcode, ops []cgra.Data) cgra.Data {
	if !allValid(ops, 1) {
		return cgra.Invalid()
	}

	x := ops[0].Value

	switch op {
	case cgra.OptInc:
		return result(x+1, a.width)
	default:
		return result(^x, a.width)
	}
}

func (a *Alu) binary(op cgra.Opcode, ops []cgra.Data) cgra.Data {
	if !allValid(ops, 2) {
		return cgra.Invalid()
	}

	mask := cgra.WidthMask(a.width)
	x, y := ops[0].Value&mask, ops[1].Value&mask

	var v uint32

	switch op {
	case cgra.OptAdd:
		v = x + y
	case cgra.OptSub:
		v = x - y
	case cgra.OptLLS:
		v = x << y
	case cgra.OptLRS:
		v = x >> y
	case cgra.OptOr:
		v = x | y
	case cgra.OptXor:
		v = x ^ y
	case cgra.OptAnd:
		v = x & y
	case cgra.OptEq:
		if x == y {
			v = 1
		}
	case cgra.OptLe:
		if signExtend(x, a.width) <= signExtend(y, a.width) {
			v = 1
		}
	}

	return result(v, a.width)
}
