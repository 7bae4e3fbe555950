// Package config provides a default configuration for the CGRA device.
package config

import (
	"github.com/sarchlab/akita/v4/mem/idealmemcontroller"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
)

// DeviceBuilder can build CGRA devices.
type DeviceBuilder struct {
	engine      sim.Engine
	freq        sim.Freq
	params      core.TileParams
	memLatency  int
	memCapacity uint64
}

// NewDeviceBuilder creates a builder for a device with a default tile. If
// memory is attached, it holds 64 KiB and answers in 2 cycles.
func NewDeviceBuilder() DeviceBuilder {
	return DeviceBuilder{
		freq:        1 * sim.GHz,
		params:      core.DefaultTileParams(),
		memLatency:  2,
		memCapacity: 64 * mem.KB,
	}
}

// WithEngine sets the engine that drives the device simulation.
func (d DeviceBuilder) WithEngine(engine sim.Engine) DeviceBuilder {
	d.engine = engine
	return d
}

// WithFreq sets the frequency of the device.
func (d DeviceBuilder) WithFreq(freq sim.Freq) DeviceBuilder {
	d.freq = freq
	return d
}

// WithTileParams sets the parameters of the tile. Zero fields keep their
// current values.
func (d DeviceBuilder) WithTileParams(params core.TileParams) DeviceBuilder {
	d.params = params.Merge(d.params)
	return d
}

// WithMemory attaches an ideal memory controller to the memory port of the
// tile.
func (d DeviceBuilder) WithMemory(attached bool) DeviceBuilder {
	d.params.Memory = attached
	return d
}

// WithMemoryLatency sets the latency of the memory in cycles.
func (d DeviceBuilder) WithMemoryLatency(latency int) DeviceBuilder {
	if latency < 1 {
		panic("memory latency must be at least 1 cycle")
	}

	d.memLatency = latency

	return d
}

// WithMemoryCapacity sets the size of the memory in bytes.
func (d DeviceBuilder) WithMemoryCapacity(capacity uint64) DeviceBuilder {
	d.memCapacity = capacity
	return d
}

// Build creates a CGRA device.
func (d DeviceBuilder) Build(name string) cgra.Device {
	dev := &device{Name: name}

	dev.Core = core.NewBuilder().
		WithEngine(d.engine).
		WithFreq(d.freq).
		WithParams(d.params).
		WithMemory(d.params.Memory).
		Build(name + ".Tile")

	if d.params.Memory {
		d.buildMemory(name, dev)
	}

	return dev
}

func (d DeviceBuilder) buildMemory(name string, dev *device) {
	dev.Storage = mem.NewStorage(d.memCapacity)

	dev.Memory = idealmemcontroller.MakeBuilder().
		WithEngine(d.engine).
		WithFreq(d.freq).
		WithLatency(d.memLatency).
		WithStorage(dev.Storage).
		Build(name + ".Memory")

	conn := directconnection.MakeBuilder().
		WithEngine(d.engine).
		WithFreq(d.freq).
		Build(name + ".MemConn")

	memPort := dev.Core.GetPortByName(cgra.PortName(cgra.Mem, 0))
	topPort := dev.Memory.GetPortByName("Top")

	conn.PlugIn(memPort)
	conn.PlugIn(topPort)

	dev.Core.SetRemotePort(cgra.Mem, 0, topPort.AsRemote())
}
