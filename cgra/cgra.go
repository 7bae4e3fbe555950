// Package cgra defines the commonly used data structure for CGRAs.
package cgra

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// PortKind defines a group of ports of a tile.
type PortKind int

const (
	RecvData PortKind = iota
	SendData
	RecvWOpt
	RecvWAddr
	Mem
)

// Name returns the name of the port kind.
func (k PortKind) Name() string {
	switch k {
	case RecvData:
		return "RecvData"
	case SendData:
		return "SendData"
	case RecvWOpt:
		return "RecvWOpt"
	case RecvWAddr:
		return "RecvWAddr"
	case Mem:
		return "Mem"
	default:
		panic("invalid port kind")
	}
}

// PortName returns the name a tile registers the port under. Only the data
// ports are indexed.
func PortName(kind PortKind, index int) string {
	switch kind {
	case RecvData, SendData:
		return fmt.Sprintf("%s[%d]", kind.Name(), index)
	default:
		return kind.Name()
	}
}

// Tile defines a tile in the CGRA.
type Tile interface {
	GetPortByName(name string) sim.Port
	SetRemotePort(kind PortKind, index int, port sim.RemotePort)

	NumInPorts() int
	NumOutPorts() int
	CtrlMemSize() int
}

// A Device is a CGRA device made of a single tile and its optional memory.
type Device interface {
	GetTile() Tile
	HasMemory() bool
	ReadMemory(addr uint32) uint32
	WriteMemory(addr uint32, data uint32)
	Components() []sim.Component
}
