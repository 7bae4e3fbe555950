package config

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/idealmemcontroller"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
)

// A device is a single tile with an optional ideal memory controller behind
// its memory port. The host reaches the memory through the storage the
// controller shares.
type device struct {
	Name    string
	Core    *core.Core
	Memory  *idealmemcontroller.Comp
	Storage *mem.Storage
}

func (d *device) String() string {
	return fmt.Sprintf("Device(%s)", d.Name)
}

// GetTile returns the tile of the device.
func (d *device) GetTile() cgra.Tile {
	return d.Core
}

// HasMemory tells if the device has a memory.
func (d *device) HasMemory() bool {
	return d.Memory != nil
}

// ReadMemory returns the word at the byte address of the memory.
func (d *device) ReadMemory(addr uint32) uint32 {
	d.mustHaveMemory()

	data, err := d.Storage.Read(uint64(addr), 4)
	if err != nil {
		panic(fmt.Sprintf("%s: read 0x%x: %v", d.Name, addr, err))
	}

	return cgra.Uint32FromBytes(data)
}

// WriteMemory stores the word at the byte address of the memory.
func (d *device) WriteMemory(addr uint32, data uint32) {
	d.mustHaveMemory()

	err := d.Storage.Write(uint64(addr), cgra.BytesFromUint32(data))
	if err != nil {
		panic(fmt.Sprintf("%s: write 0x%x: %v", d.Name, addr, err))
	}

	core.Trace("Memory",
		"Behavior", "WriteMemory",
		"Device", d.Name,
		"Addr", addr,
		"Data", data,
	)
}

func (d *device) mustHaveMemory() {
	if d.Memory == nil {
		panic(fmt.Sprintf("%s has no memory", d.Name))
	}
}

// Components returns every simulation component of the device.
func (d *device) Components() []sim.Component {
	comps := []sim.Component{d.Core}
	if d.Memory != nil {
		comps = append(comps, d.Memory)
	}

	return comps
}
