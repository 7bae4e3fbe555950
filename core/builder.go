package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/fu"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	params TileParams
}

// NewBuilder creates a builder with the default tile parameters.
func NewBuilder() Builder {
	return Builder{
		freq:   1 * sim.GHz,
		params: DefaultTileParams(),
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithParams replaces every non-zero parameter of the builder. It never
// detaches memory the builder already has.
func (b Builder) WithParams(params TileParams) Builder {
	b.params = params.Merge(b.params)
	return b
}

// WithInPorts sets the number of input data ports.
func (b Builder) WithInPorts(n int) Builder {
	if n < 1 {
		panic("Need at least 1 input port")
	}

	b.params.NumInPorts = n

	return b
}

// WithOutPorts sets the number of output data ports.
func (b Builder) WithOutPorts(n int) Builder {
	if n < 1 {
		panic("Need at least 1 output port")
	}

	b.params.NumOutPorts = n

	return b
}

// WithFUPorts sets the number of FU operand lines and result lines.
func (b Builder) WithFUPorts(numIn, numOut int) Builder {
	if numIn < 1 || numOut < 1 {
		panic("FU needs at least 1 operand line and 1 result line")
	}

	b.params.NumFUInPorts = numIn
	b.params.NumFUOutPorts = numOut

	return b
}

// WithCtrlMemSize sets the number of control memory words.
func (b Builder) WithCtrlMemSize(n int) Builder {
	if n < 1 {
		panic("Need at least 1 control memory word")
	}

	b.params.CtrlMemSize = n

	return b
}

// WithDataWidth sets the payload width in bits.
func (b Builder) WithDataWidth(width int) Builder {
	b.params.DataWidth = width
	return b
}

// WithFU sets the kinds of functional unit the tile holds.
func (b Builder) WithFU(kinds ...fu.Kind) Builder {
	b.params.FU = append([]fu.Kind(nil), kinds...)
	return b
}

// WithMemory attaches the memory port of the tile.
func (b Builder) WithMemory(attached bool) Builder {
	b.params.Memory = attached
	return b
}

// BuildTile creates the cycle-level tile without a simulation component
// around it.
func (b Builder) BuildTile(name string) *Tile {
	if err := b.params.Validate(); err != nil {
		panic(err)
	}

	memPort := fu.NewMemPort(name+".Mem", b.params.Memory)

	unit, err := fu.Build(b.params.FU, b.params.DataWidth, memPort)
	if err != nil {
		panic(err)
	}

	return newTile(name, b.params, unit, memPort)
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("engine is not set")
	}

	c := &Core{}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.tile = b.BuildTile(name)

	for i := 0; i < b.params.NumInPorts; i++ {
		c.recvData = append(c.recvData, c.addPort(cgra.RecvData, i))
	}

	for i := 0; i < b.params.NumOutPorts; i++ {
		c.sendData = append(c.sendData, &portPair{local: c.addPort(cgra.SendData, i)})
	}

	c.recvWOpt = c.addPort(cgra.RecvWOpt, 0)
	c.recvWAddr = c.addPort(cgra.RecvWAddr, 0)

	if b.params.Memory {
		c.mem = &portPair{local: c.addPort(cgra.Mem, 0)}
	}

	return c
}
