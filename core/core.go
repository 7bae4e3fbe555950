package core

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tilesim/cgra"
)

type portPair struct {
	local  sim.Port
	remote sim.RemotePort
}

// Core wraps a Tile into a simulation component. Every data, configuration
// and memory channel of the tile is backed by a port.
type Core struct {
	*sim.TickingComponent

	tile *Tile

	recvData  []sim.Port
	sendData  []*portPair
	recvWOpt  sim.Port
	recvWAddr sim.Port
	mem       *portPair
}

func (c *Core) addPort(kind cgra.PortKind, index int) sim.Port {
	name := cgra.PortName(kind, index)
	port := sim.NewPort(c, 1, 1, c.Name()+"."+name)
	c.AddPort(name, port)

	return port
}

// Tile returns the cycle-level tile the core runs.
func (c *Core) Tile() *Tile {
	return c.tile
}

// NumInPorts returns the number of input data ports.
func (c *Core) NumInPorts() int {
	return c.tile.params.NumInPorts
}

// NumOutPorts returns the number of output data ports.
func (c *Core) NumOutPorts() int {
	return c.tile.params.NumOutPorts
}

// CtrlMemSize returns the number of control memory words.
func (c *Core) CtrlMemSize() int {
	return c.tile.params.CtrlMemSize
}

// SetRemotePort sets the port that an output port of the core sends to.
func (c *Core) SetRemotePort(kind cgra.PortKind, index int, remote sim.RemotePort) {
	switch kind {
	case cgra.SendData:
		c.sendData[index].remote = remote
	case cgra.Mem:
		if c.mem == nil {
			panic(fmt.Sprintf("%s has no memory port", c.Name()))
		}

		c.mem.remote = remote
	default:
		panic(fmt.Sprintf("%s ports do not send", kind.Name()))
	}
}

// Tick runs the tile for one cycle. Incoming messages are moved into the
// tile channels first, so a token that arrives in a cycle can be used in the
// same cycle.
func (c *Core) Tick() (madeProgress bool) {
	madeProgress = c.doRecv() || madeProgress
	madeProgress = c.tile.Tick() || madeProgress
	madeProgress = c.doSend() || madeProgress

	return madeProgress
}

func (c *Core) now() float64 {
	return float64(c.Engine.CurrentTime() * 1e9)
}

func (c *Core) doRecv() bool {
	madeProgress := false

	for i, port := range c.recvData {
		madeProgress = c.recvDataOn(i, port) || madeProgress
	}

	madeProgress = c.recvConfig() || madeProgress
	madeProgress = c.recvMem() || madeProgress

	return madeProgress
}

func (c *Core) recvDataOn(i int, port sim.Port) bool {
	ch := c.tile.recvData[i]
	if !ch.CanSend() {
		return false
	}

	item := port.PeekIncoming()
	if item == nil {
		return false
	}

	msg := item.(*cgra.MoveMsg)
	ch.Send(msg.Data)
	port.RetrieveIncoming()

	Trace("DataFlow",
		"Behavior", "Recv",
		slog.Float64("Time", c.now()),
		"Data", msg.Data.Value,
		"Pred", msg.Data.Pred,
		"From", msg.Src,
		"To", msg.Dst,
		"Port", i,
	)

	return true
}

func (c *Core) recvConfig() bool {
	madeProgress := false

	if c.tile.recvWOpt.CanSend() {
		if item := c.recvWOpt.PeekIncoming(); item != nil {
			msg := item.(*cgra.ConfigOptMsg)
			c.tile.recvWOpt.Send(msg.Word)
			c.recvWOpt.RetrieveIncoming()

			madeProgress = true
		}
	}

	if c.tile.recvWAddr.CanSend() {
		if item := c.recvWAddr.PeekIncoming(); item != nil {
			msg := item.(*cgra.ConfigAddrMsg)
			c.tile.recvWAddr.Send(msg.Addr)
			c.recvWAddr.RetrieveIncoming()

			madeProgress = true
		}
	}

	return madeProgress
}

func (c *Core) recvMem() bool {
	if c.mem == nil {
		return false
	}

	item := c.mem.local.PeekIncoming()
	if item == nil {
		return false
	}

	switch msg := item.(type) {
	case *mem.DataReadyRsp:
		ch := c.tile.memPort.ReadData
		if !ch.CanSend() {
			return false
		}

		ch.Send(cgra.NewScalar(cgra.Uint32FromBytes(msg.Data)))

		Trace("Memory",
			"Behavior", "Recv",
			"Time", c.now(),
			"Data", msg.Data,
			"Src", msg.Src,
			"Dst", msg.Dst,
		)
	case *mem.WriteDoneRsp:
		Trace("Memory",
			"Behavior", "WriteDone",
			"Time", c.now(),
			"Src", msg.Src,
		)
	default:
		panic(fmt.Sprintf("cannot handle memory msg of type %T", item))
	}

	c.mem.local.RetrieveIncoming()

	return true
}

func (c *Core) doSend() bool {
	madeProgress := false

	for i, pair := range c.sendData {
		madeProgress = c.sendDataOn(i, pair) || madeProgress
	}

	if c.mem != nil {
		madeProgress = c.sendRead() || madeProgress
		madeProgress = c.sendWrite() || madeProgress
	}

	return madeProgress
}

func (c *Core) sendDataOn(i int, pair *portPair) bool {
	ch := c.tile.sendData[i]

	data, ok := ch.Peek()
	if !ok || pair.remote == "" {
		return false
	}

	msg := cgra.MoveMsgBuilder{}.
		WithSrc(pair.local.AsRemote()).
		WithDst(pair.remote).
		WithData(data).
		Build()

	err := pair.local.Send(msg)
	if err != nil {
		Trace("Backpressure",
			"Type", "SendFailed",
			"Time", c.now(),
			"Port", i,
			"Data", data.Value,
		)

		return false
	}

	ch.Accept()

	Trace("DataFlow",
		"Behavior", "Send",
		slog.Float64("Time", c.now()),
		"Data", data.Value,
		"Pred", data.Pred,
		"From", msg.Src,
		"To", msg.Dst,
		"Port", i,
	)

	return true
}

func (c *Core) sendRead() bool {
	ch := c.tile.memPort.ReadAddr

	addr, ok := ch.Peek()
	if !ok {
		return false
	}

	msg := mem.ReadReqBuilder{}.
		WithAddress(uint64(addr)).
		WithSrc(c.mem.local.AsRemote()).
		WithDst(c.mem.remote).
		WithByteSize(4).
		Build()

	err := c.mem.local.Send(msg)
	if err != nil {
		Trace("Backpressure",
			"Type", "MemoryReadFailed",
			"Time", c.now(),
			"Address", addr,
		)

		return false
	}

	ch.Accept()

	Trace("Memory",
		"Behavior", "Send",
		slog.Float64("Time", c.now()),
		"Type", "Read",
		"Address", addr,
		"Src", msg.Src,
		"Dst", msg.Dst,
	)

	return true
}

func (c *Core) sendWrite() bool {
	port := c.tile.memPort

	addr, okAddr := port.WriteAddr.Peek()
	data, okData := port.WriteData.Peek()

	if !okAddr || !okData {
		return false
	}

	msg := mem.WriteReqBuilder{}.
		WithAddress(uint64(addr)).
		WithData(cgra.BytesFromUint32(data.Value)).
		WithSrc(c.mem.local.AsRemote()).
		WithDst(c.mem.remote).
		Build()

	err := c.mem.local.Send(msg)
	if err != nil {
		Trace("Backpressure",
			"Type", "MemoryWriteFailed",
			"Time", c.now(),
			"Address", addr,
		)

		return false
	}

	port.WriteAddr.Accept()
	port.WriteData.Accept()

	Trace("Memory",
		"Behavior", "Send",
		slog.Float64("Time", c.now()),
		"Type", "Write",
		"Address", addr,
		"Data", data.Value,
		"Src", msg.Src,
		"Dst", msg.Dst,
	)

	return true
}
