package cgra

// Opcode names the operation a configuration word asks the functional unit
// to perform.
type Opcode string

// Opcodes understood by the functional units.
const (
	OptNAH Opcode = "NAH"

	OptAdd Opcode = "ADD"
	OptInc Opcode = "INC"
	OptSub Opcode = "SUB"
	OptLLS Opcode = "LLS"
	OptLRS Opcode = "LRS"
	OptOr  Opcode = "OR"
	OptXor Opcode = "XOR"
	OptAnd Opcode = "AND"
	OptNot Opcode = "NOT"
	OptEq  Opcode = "EQ"
	OptLe  Opcode = "LE"
	OptPhi Opcode = "PHI"

	OptMul Opcode = "MUL"

	OptLd  Opcode = "LD"
	OptStr Opcode = "STR"

	OptMulAdd    Opcode = "MUL_ADD"
	OptMulSub    Opcode = "MUL_SUB"
	OptMulAddLLS Opcode = "MUL_ADD_LLS"
	OptMulSubLLS Opcode = "MUL_SUB_LLS"
	OptMulSubLRS Opcode = "MUL_SUB_LRS"
)

// RouteNone is the route selector that leaves an output line unused.
const RouteNone uint8 = 0

// CtrlWord is one configuration word: an opcode and one route selector per
// crossbar output line. Selector r > 0 picks crossbar input line r-1.
type CtrlWord struct {
	Opcode Opcode
	Routes []uint8
}

// NewNAHWord returns the word that unwritten control memory slots hold.
func NewNAHWord(numRoutes int) CtrlWord {
	return CtrlWord{Opcode: OptNAH, Routes: make([]uint8, numRoutes)}
}

// Clone returns a deep copy of the word.
func (w CtrlWord) Clone() CtrlWord {
	routes := make([]uint8, len(w.Routes))
	copy(routes, w.Routes)

	return CtrlWord{Opcode: w.Opcode, Routes: routes}
}
