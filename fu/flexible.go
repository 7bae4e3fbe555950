package fu

import (
	"strings"

	"github.com/sarchlab/tilesim/cgra"
)

// Flexible holds several units and hands every opcode to the first member
// that supports it.
type Flexible struct {
	units  []FunctionalUnit
	active FunctionalUnit
}

// NewFlexible creates a Flexible unit over the given members.
func NewFlexible(units ...FunctionalUnit) *Flexible {
	return &Flexible{units: units}
}

// Name returns the name of the unit, listing its members.
func (f *Flexible) Name() string {
	names := make([]string, 0, len(f.units))
	for _, u := range f.units {
		names = append(names, u.Name())
	}

	return "Flexible[" + strings.Join(names, ",") + "]"
}

// Supports tells if any member implements the opcode.
func (f *Flexible) Supports(op cgra.Opcode) bool {
	return f.find(op) != nil
}

func (f *Flexible) find(op cgra.Opcode) FunctionalUnit {
	for _, u := range f.units {
		if u.Supports(op) {
			return u
		}
	}

	return nil
}

// Compute dispatches the opcode. Unsupported opcodes behave like NAH.
func (f *Flexible) Compute(op cgra.Opcode, ops []cgra.Data) (cgra.Data, bool) {
	u := f.find(op)
	if u == nil {
		return cgra.Invalid(), true
	}

	f.active = u

	return u.Compute(op, ops)
}

// Retire forwards the slot completion to the member that ran the slot.
func (f *Flexible) Retire() {
	if f.active != nil {
		f.active.Retire()
		f.active = nil
	}
}
