package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
)

// FunctionalSimulator runs a program on a cycle-level tile with ideal
// surroundings: sources present their next value every cycle, sinks take
// every output at once, memory answers a load in the next cycle, and the
// writes are issued one per cycle from cycle 0.
type FunctionalSimulator struct {
	program core.Program
	tile    *core.Tile

	sources [][]uint32
	outputs [][]uint32
	memory  map[uint32]uint32
	writes  []core.ConfigWrite

	pendingRead bool
	readAddr    uint32
}

// NewFunctionalSimulator creates a simulator for the program.
func NewFunctionalSimulator(p core.Program) *FunctionalSimulator {
	params := p.Tile
	params.Memory = true

	tile := core.NewBuilder().WithParams(params).BuildTile("FuncSim")

	return &FunctionalSimulator{
		program: p,
		tile:    tile,
		sources: make([][]uint32, params.NumInPorts),
		outputs: make([][]uint32, params.NumOutPorts),
		memory:  make(map[uint32]uint32),
		writes:  append([]core.ConfigWrite(nil), p.Writes...),
	}
}

// PreloadMemory sets the word at the address before the run.
func (fs *FunctionalSimulator) PreloadMemory(addr, value uint32) {
	fs.memory[addr] = value
}

// Feed queues values for an input port.
func (fs *FunctionalSimulator) Feed(port int, values ...uint32) {
	fs.sources[port] = append(fs.sources[port], values...)
}

// Run runs the program for the given number of cycles. It reports the
// configuration writes the tile rejected.
func (fs *FunctionalSimulator) Run(cycles int) error {
	for c := 0; c < cycles; c++ {
		fs.step()
	}

	errs := fs.tile.ConfigErrors()
	if len(errs) > 0 {
		return fmt.Errorf("%d configuration writes rejected: %w", len(errs), errors.Join(errs...))
	}

	return nil
}

func (fs *FunctionalSimulator) step() {
	t := fs.tile

	if len(fs.writes) > 0 && t.RecvWOpt().CanSend() && t.RecvWAddr().CanSend() {
		t.RecvWOpt().Send(fs.writes[0].Word())
		t.RecvWAddr().Send(fs.writes[0].Addr)
		fs.writes = fs.writes[1:]
	}

	for i, src := range fs.sources {
		if len(src) > 0 && t.RecvData(i).CanSend() {
			t.RecvData(i).Send(cgra.NewScalar(src[0]))
			fs.sources[i] = src[1:]
		}
	}

	port := t.MemPort()
	if fs.pendingRead && port.ReadData.CanSend() {
		port.ReadData.Send(cgra.NewScalar(fs.memory[fs.readAddr]))
		fs.pendingRead = false
	}

	t.Tick()

	for j := range fs.outputs {
		if d, ok := t.SendData(j).Accept(); ok {
			fs.outputs[j] = append(fs.outputs[j], d.Value)
		}
	}

	if addr, ok := port.ReadAddr.Accept(); ok {
		fs.readAddr = addr
		fs.pendingRead = true
	}

	if port.WriteAddr.Valid() && port.WriteData.Valid() {
		addr, _ := port.WriteAddr.Accept()
		data, _ := port.WriteData.Accept()
		fs.memory[addr] = data.Value
	}
}

// Outputs returns the values every output port produced, in order.
func (fs *FunctionalSimulator) Outputs() [][]uint32 {
	return fs.outputs
}

// ReadMemory returns the word at the address.
func (fs *FunctionalSimulator) ReadMemory(addr uint32) uint32 {
	return fs.memory[addr]
}

// Stats returns the counters of the simulated tile.
func (fs *FunctionalSimulator) Stats() core.Stats {
	return fs.tile.Stats()
}
