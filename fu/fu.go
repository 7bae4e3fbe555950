// Package fu implements the functional units a tile can be built with. Every
// unit honors the same compute contract, so the tile never needs to know
// which one it drives.
package fu

import (
	"fmt"

	"github.com/sarchlab/tilesim/cgra"
)

// FunctionalUnit is the compute contract of a tile's functional unit.
//
// Compute is called every cycle with the active opcode and the operand latch.
// It returns the result and whether the unit is done with the current slot.
// A unit that is not done holds the tile on the slot. Retire is called once
// the slot completes.
type FunctionalUnit interface {
	Name() string
	Supports(op cgra.Opcode) bool
	Compute(op cgra.Opcode, operands []cgra.Data) (cgra.Data, bool)
	Retire()
}

// Kind names a concrete functional unit.
type Kind string

const (
	KindAlu                Kind = "alu"
	KindMul                Kind = "mul"
	KindMem                Kind = "mem"
	KindThreeMulAluShifter Kind = "three_mul_alu_shifter"
)

// Kinds lists every kind New accepts.
var Kinds = []Kind{KindAlu, KindMul, KindMem, KindThreeMulAluShifter}

// New creates the unit of the given kind. The memory port is only used by
// the memory unit and may be nil for the others.
func New(kind Kind, width int, port *MemPort) (FunctionalUnit, error) {
	switch kind {
	case KindAlu:
		return NewAlu(width), nil
	case KindMul:
		return NewMul(width), nil
	case KindMem:
		return NewMemUnit(width, port), nil
	case KindThreeMulAluShifter:
		return NewThreeMulAluShifter(width), nil
	default:
		return nil, fmt.Errorf("unknown functional unit kind %q", kind)
	}
}

// Build creates the unit a tile drives. A single kind gives that unit, more
// than one kind gives a Flexible unit that holds all of them.
func Build(kinds []Kind, width int, port *MemPort) (FunctionalUnit, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no functional unit kind given")
	}

	units := make([]FunctionalUnit, 0, len(kinds))
	for _, k := range kinds {
		u, err := New(k, width, port)
		if err != nil {
			return nil, err
		}

		units = append(units, u)
	}

	if len(units) == 1 {
		return units[0], nil
	}

	return NewFlexible(units...), nil
}

func operand(ops []cgra.Data, i int) cgra.Data {
	if i >= len(ops) {
		return cgra.Invalid()
	}

	return ops[i]
}

// allValid tells if the first n operands are present and valid.
func allValid(ops []cgra.Data, n int) bool {
	if len(ops) < n {
		return false
	}

	for i := 0; i < n; i++ {
		if !ops[i].Pred {
			return false
		}
	}

	return true
}

func result(v uint32, width int) cgra.Data {
	return cgra.NewScalar(v).Masked(width)
}

func signExtend(v uint32, width int) int32 {
	if width >= 32 {
		return int32(v)
	}

	shift := uint(32 - width)

	return int32(v<<shift) >> shift
}
