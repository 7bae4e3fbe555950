package core

import (
	"fmt"
	"math"

	"github.com/sarchlab/tilesim/fu"
)

// TileParams are the construction-time parameters of a tile.
type TileParams struct {
	NumInPorts    int       `yaml:"in_ports"`
	NumOutPorts   int       `yaml:"out_ports"`
	NumFUInPorts  int       `yaml:"fu_in_ports"`
	NumFUOutPorts int       `yaml:"fu_out_ports"`
	CtrlMemSize   int       `yaml:"ctrl_mem_size"`
	DataWidth     int       `yaml:"data_width"`
	FU            []fu.Kind `yaml:"fu"`
	Memory        bool      `yaml:"memory"`
}

// DefaultTileParams returns a four-port tile with an ALU and a memory unit.
func DefaultTileParams() TileParams {
	return TileParams{
		NumInPorts:    4,
		NumOutPorts:   4,
		NumFUInPorts:  4,
		NumFUOutPorts: 2,
		CtrlMemSize:   4,
		DataWidth:     32,
		FU:            []fu.Kind{fu.KindAlu, fu.KindMem},
	}
}

// Merge returns p with every zero field taken from other. A false Memory is
// the zero value too, so Merge can attach memory but never detach it; use
// Builder.WithMemory(false) for that.
func (p TileParams) Merge(other TileParams) TileParams {
	if p.NumInPorts == 0 {
		p.NumInPorts = other.NumInPorts
	}

	if p.NumOutPorts == 0 {
		p.NumOutPorts = other.NumOutPorts
	}

	if p.NumFUInPorts == 0 {
		p.NumFUInPorts = other.NumFUInPorts
	}

	if p.NumFUOutPorts == 0 {
		p.NumFUOutPorts = other.NumFUOutPorts
	}

	if p.CtrlMemSize == 0 {
		p.CtrlMemSize = other.CtrlMemSize
	}

	if p.DataWidth == 0 {
		p.DataWidth = other.DataWidth
	}

	if len(p.FU) == 0 {
		p.FU = other.FU
	}

	if !p.Memory {
		p.Memory = other.Memory
	}

	return p
}

// NumXbarInLines returns the number of crossbar input lines. The external
// inputs come first, followed by the FU result lines.
func (p TileParams) NumXbarInLines() int {
	return p.NumInPorts + p.NumFUOutPorts
}

// NumXbarOutLines returns the number of crossbar output lines. The tile
// outputs come first, followed by the FU operand lines.
func (p TileParams) NumXbarOutLines() int {
	return p.NumOutPorts + p.NumFUInPorts
}

// Validate checks that the parameters describe a buildable tile.
func (p TileParams) Validate() error {
	switch {
	case p.NumInPorts < 1:
		return fmt.Errorf("tile needs at least 1 input port, got %d", p.NumInPorts)
	case p.NumOutPorts < 1:
		return fmt.Errorf("tile needs at least 1 output port, got %d", p.NumOutPorts)
	case p.NumFUInPorts < 1:
		return fmt.Errorf("FU needs at least 1 operand port, got %d", p.NumFUInPorts)
	case p.NumFUOutPorts < 1:
		return fmt.Errorf("FU needs at least 1 result port, got %d", p.NumFUOutPorts)
	case p.CtrlMemSize < 1:
		return fmt.Errorf("control memory needs at least 1 word, got %d", p.CtrlMemSize)
	case p.DataWidth < 1 || p.DataWidth > 32:
		return fmt.Errorf("data width must be in [1, 32], got %d", p.DataWidth)
	case p.NumXbarInLines() > math.MaxUint8:
		return fmt.Errorf("%d crossbar inputs do not fit a route selector",
			p.NumXbarInLines())
	case len(p.FU) == 0:
		return fmt.Errorf("tile needs at least 1 functional unit kind")
	}

	for _, k := range p.FU {
		if _, err := fu.New(k, p.DataWidth, nil); err != nil {
			return err
		}
	}

	return nil
}
