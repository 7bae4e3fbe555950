package core

import (
	"fmt"

	"github.com/sarchlab/tilesim/cgra"
)

// Line is what a crossbar line carries in one cycle. Valid tells if a token
// is present on the line, independent of the predicate of the value.
type Line struct {
	Data  cgra.Data
	Valid bool
}

// Crossbar routes input lines to output lines. It keeps no state.
type Crossbar struct {
	numIn, numOut int
}

// NewCrossbar creates a crossbar with numIn input lines and numOut output
// lines.
func NewCrossbar(numIn, numOut int) Crossbar {
	return Crossbar{numIn: numIn, numOut: numOut}
}

// NumIn returns the number of input lines.
func (x Crossbar) NumIn() int {
	return x.numIn
}

// NumOut returns the number of output lines.
func (x Crossbar) NumOut() int {
	return x.numOut
}

// Route selects, for every output line j, the input line routes[j]-1. An
// output line with RouteNone carries no token and an invalid value. Several
// outputs may select the same input.
func (x Crossbar) Route(in []Line, routes []uint8) []Line {
	if len(in) != x.numIn || len(routes) != x.numOut {
		panic(fmt.Sprintf(
			"crossbar expects %d inputs and %d routes, got %d and %d",
			x.numIn, x.numOut, len(in), len(routes)))
	}

	out := make([]Line, x.numOut)

	for j, r := range routes {
		if r == cgra.RouteNone {
			continue
		}

		if int(r) > x.numIn {
			panic(fmt.Sprintf("route selector %d exceeds %d", r, x.numIn))
		}

		out[j] = in[r-1]
	}

	return out
}
