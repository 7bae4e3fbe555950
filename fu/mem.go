package fu

import "github.com/sarchlab/tilesim/cgra"

// MemPort is the tile's optional memory interface. A port that is not
// attached is never driven, so an environment that leaves the channels idle
// cannot deadlock the tile.
type MemPort struct {
	Attached bool

	ReadAddr  *cgra.Channel[uint32]
	ReadData  *cgra.Channel[cgra.Data]
	WriteAddr *cgra.Channel[uint32]
	WriteData *cgra.Channel[cgra.Data]
}

// NewMemPort creates the four memory channels.
func NewMemPort(name string, attached bool) *MemPort {
	return &MemPort{
		Attached:  attached,
		ReadAddr:  cgra.NewChannel[uint32](name + ".ReadAddr"),
		ReadData:  cgra.NewChannel[cgra.Data](name + ".ReadData"),
		WriteAddr: cgra.NewChannel[uint32](name + ".WriteAddr"),
		WriteData: cgra.NewChannel[cgra.Data](name + ".WriteData"),
	}
}

type memPhase int

const (
	memIdle memPhase = iota
	memWaiting
	memDone
)

// MemUnit issues loads and stores on the memory port. It keeps at most one
// request outstanding.
type MemUnit struct {
	width int
	port  *MemPort

	phase  memPhase
	result cgra.Data
}

// NewMemUnit creates a memory unit. A nil port is treated as detached.
func NewMemUnit(width int, port *MemPort) *MemUnit {
	return &MemUnit{width: width, port: port}
}

// Name returns the name of the unit.
func (m *MemUnit) Name() string {
	return "MemUnit"
}

// Supports tells if the unit implements the opcode.
func (m *MemUnit) Supports(op cgra.Opcode) bool {
	return op == cgra.OptLd || op == cgra.OptStr
}

// Outstanding tells if a load is waiting for its response.
func (m *MemUnit) Outstanding() bool {
	return m.phase == memWaiting
}

// Compute issues or completes the memory access of the current slot.
func (m *MemUnit) Compute(op cgra.Opcode, ops []cgra.Data) (cgra.Data, bool) {
	if m.port == nil || !m.port.Attached {
		return cgra.Invalid(), true
	}

	switch op {
	case cgra.OptLd:
		return m.load(ops)
	case cgra.OptStr:
		return m.store(ops)
	default:
		return cgra.Invalid(), true
	}
}

func (m *MemUnit) load(ops []cgra.Data) (cgra.Data, bool) {
	switch m.phase {
	case memDone:
		return m.result, true
	case memWaiting:
		rsp, ok := m.port.ReadData.Accept()
		if !ok {
			return cgra.Invalid(), false
		}

		m.result = rsp.Masked(m.width)
		m.phase = memDone

		return m.result, true
	}

	if !allValid(ops, 1) {
		return cgra.Invalid(), true
	}

	addr := ops[0].Value & cgra.WidthMask(m.width)
	if m.port.ReadAddr.Send(addr) {
		m.phase = memWaiting
	}

	return cgra.Invalid(), false
}

func (m *MemUnit) store(ops []cgra.Data) (cgra.Data, bool) {
	if m.phase == memDone {
		return cgra.Invalid(), true
	}

	if !allValid(ops, 2) {
		return cgra.Invalid(), true
	}

	if !m.port.WriteAddr.CanSend() || !m.port.WriteData.CanSend() {
		return cgra.Invalid(), false
	}

	m.port.WriteAddr.Send(ops[0].Value & cgra.WidthMask(m.width))
	m.port.WriteData.Send(ops[1].Masked(m.width))
	m.phase = memDone

	return cgra.Invalid(), true
}

// Retire clears the per-slot state once the slot completes.
func (m *MemUnit) Retire() {
	m.phase = memIdle
	m.result = cgra.Invalid()
}
