package core

import (
	"fmt"

	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/fu"
)

// Stats counts what a tile did since it was built.
type Stats struct {
	Cycles             uint64
	FiredSlots         uint64
	StallCycles        uint64
	BackpressureCycles uint64
	DroppedTokens      uint64
	ConfigWrites       uint64
	ConfigErrors       uint64
}

type firePhase int

const (
	fireAll firePhase = iota
	fireInputs
	fireResults
)

// Tile is the cycle-level model of a single tile. It owns the control
// memory, the crossbar, the FU and the channels that surround them. Tile
// knows nothing about the simulation engine; every call to Tick is one clock
// cycle.
type Tile struct {
	name   string
	params TileParams

	ctrlMem  *CtrlMem
	crossbar Crossbar
	unit     fu.FunctionalUnit

	recvData  []*cgra.Channel[cgra.Data]
	sendData  []*cgra.Channel[cgra.Data]
	recvWOpt  *cgra.Channel[cgra.CtrlWord]
	recvWAddr *cgra.Channel[int]
	memPort   *fu.MemPort

	pc          int
	latch       []cgra.Data
	latchLoaded bool

	// A slot whose FU is still busy has already taken its inputs.
	outstanding  bool
	staged       []cgra.Data
	stagedLoaded bool

	stats      Stats
	configErrs []error
}

func newTile(
	name string,
	params TileParams,
	unit fu.FunctionalUnit,
	memPort *fu.MemPort,
) *Tile {
	t := &Tile{
		name:      name,
		params:    params,
		ctrlMem:   NewCtrlMem(params.CtrlMemSize, params.NumXbarInLines(), params.NumXbarOutLines()),
		crossbar:  NewCrossbar(params.NumXbarInLines(), params.NumXbarOutLines()),
		unit:      unit,
		recvWOpt:  cgra.NewChannel[cgra.CtrlWord](name + ".RecvWOpt"),
		recvWAddr: cgra.NewChannel[int](name + ".RecvWAddr"),
		memPort:   memPort,
		latch:     make([]cgra.Data, params.NumFUInPorts),
		staged:    make([]cgra.Data, params.NumFUInPorts),
	}

	for i := 0; i < params.NumInPorts; i++ {
		t.recvData = append(t.recvData,
			cgra.NewChannel[cgra.Data](fmt.Sprintf("%s.RecvData[%d]", name, i)))
	}

	for i := 0; i < params.NumOutPorts; i++ {
		t.sendData = append(t.sendData,
			cgra.NewChannel[cgra.Data](fmt.Sprintf("%s.SendData[%d]", name, i)))
	}

	return t
}

// Name returns the name of the tile.
func (t *Tile) Name() string {
	return t.name
}

// Params returns the parameters the tile was built with.
func (t *Tile) Params() TileParams {
	return t.params
}

// FU returns the functional unit the tile drives.
func (t *Tile) FU() fu.FunctionalUnit {
	return t.unit
}

// RecvData returns the i-th input data channel.
func (t *Tile) RecvData(i int) *cgra.Channel[cgra.Data] {
	return t.recvData[i]
}

// SendData returns the i-th output data channel.
func (t *Tile) SendData(i int) *cgra.Channel[cgra.Data] {
	return t.sendData[i]
}

// RecvWOpt returns the channel that carries configuration words.
func (t *Tile) RecvWOpt() *cgra.Channel[cgra.CtrlWord] {
	return t.recvWOpt
}

// RecvWAddr returns the channel that carries configuration addresses.
func (t *Tile) RecvWAddr() *cgra.Channel[int] {
	return t.recvWAddr
}

// MemPort returns the memory interface of the tile.
func (t *Tile) MemPort() *fu.MemPort {
	return t.memPort
}

// PC returns the control memory address of the active word.
func (t *Tile) PC() int {
	return t.pc
}

// CtrlWord returns a copy of the word stored at the address.
func (t *Tile) CtrlWord(addr int) cgra.CtrlWord {
	return t.ctrlMem.Read(addr)
}

// Latch returns the operands the FU computes on in the current cycle, and
// whether any of them was delivered by the previous slot.
func (t *Tile) Latch() ([]cgra.Data, bool) {
	return append([]cgra.Data(nil), t.latch...), t.latchLoaded
}

// Stats returns the counters of the tile.
func (t *Tile) Stats() Stats {
	return t.stats
}

// ConfigErrors returns the configuration writes the tile rejected, oldest
// first.
func (t *Tile) ConfigErrors() []error {
	return append([]error(nil), t.configErrs...)
}

// Tick runs the tile for one cycle. It returns true if any token, word or
// operand moved.
func (t *Tile) Tick() bool {
	t.stats.Cycles++

	progress := t.writeConfig()

	word := t.ctrlMem.Read(t.pc)
	result, done := t.unit.Compute(word.Opcode, t.latch)

	fuLine := Line{Data: cgra.Invalid()}
	if done && t.latchLoaded && word.Opcode != cgra.OptNAH {
		fuLine = Line{Data: result, Valid: true}
	}

	in := t.inputLines(fuLine)
	out := t.crossbar.Route(in, word.Routes)

	if !done {
		return t.stall(word, in, out) || progress
	}

	return t.complete(word, in, out) || progress
}

// writeConfig applies a configuration write before the active word is read,
// so a word written to the current address takes effect in the same cycle.
func (t *Tile) writeConfig() bool {
	if !t.recvWOpt.Valid() || !t.recvWAddr.Valid() {
		return false
	}

	word, _ := t.recvWOpt.Accept()
	addr, _ := t.recvWAddr.Accept()

	err := t.ctrlMem.Write(addr, word)
	if err != nil {
		t.stats.ConfigErrors++
		t.configErrs = append(t.configErrs, err)

		Trace("Config",
			"Behavior", "Reject",
			"Tile", t.name,
			"Cycle", t.stats.Cycles,
			"Addr", addr,
			"Error", err.Error(),
		)

		return true
	}

	t.stats.ConfigWrites++

	Trace("Config",
		"Behavior", "Write",
		"Tile", t.name,
		"Cycle", t.stats.Cycles,
		"Addr", addr,
		"Opt", string(word.Opcode),
		"Routes", word.Routes,
	)

	return true
}

func (t *Tile) inputLines(fuLine Line) []Line {
	lines := make([]Line, t.crossbar.NumIn())

	if !t.outstanding {
		for i, ch := range t.recvData {
			if d, ok := ch.Peek(); ok {
				lines[i] = Line{Data: d.Masked(t.params.DataWidth), Valid: true}
			}
		}
	}

	// Only the first FU result line carries the result.
	lines[t.params.NumInPorts] = fuLine

	return lines
}

func (t *Tile) fromFU(r uint8) bool {
	return int(r) > t.params.NumInPorts
}

func (t *Tile) selects(phase firePhase, r uint8) bool {
	if r == cgra.RouteNone {
		return false
	}

	switch phase {
	case fireInputs:
		return !t.fromFU(r)
	case fireResults:
		return t.fromFU(r)
	default:
		return true
	}
}

func (t *Tile) outputsReady(phase firePhase, word cgra.CtrlWord, out []Line) bool {
	for j := 0; j < t.params.NumOutPorts; j++ {
		if !out[j].Valid || !t.selects(phase, word.Routes[j]) {
			continue
		}

		if !t.sendData[j].CanSend() {
			return false
		}
	}

	return true
}

// stall handles a cycle in which the FU holds the slot. The lines fed by the
// external inputs fire once, the first time the outputs allow it. The lines
// fed by the FU wait for the result.
func (t *Tile) stall(word cgra.CtrlWord, in, out []Line) bool {
	t.stats.StallCycles++

	Trace("Stall",
		"Tile", t.name,
		"PC", t.pc,
		"OpCode", word.Opcode,
		"Outstanding", t.outstanding,
	)

	if t.outstanding {
		return false
	}

	if !t.outputsReady(fireInputs, word, out) {
		t.stats.BackpressureCycles++
		t.traceBackpressure(word)

		return false
	}

	moved := t.transfer(fireInputs, word, in, out)
	t.outstanding = true

	return moved
}

// complete fires the slot and moves to the next word. Nothing changes if a
// tile output that carries a token cannot take it.
func (t *Tile) complete(word cgra.CtrlWord, in, out []Line) bool {
	phase := fireAll
	if t.outstanding {
		phase = fireResults
	}

	if !t.outputsReady(phase, word, out) {
		t.stats.BackpressureCycles++
		t.traceBackpressure(word)

		return false
	}

	moved := t.transfer(phase, word, in, out) || t.latchLoaded

	t.latch, t.staged = t.staged, t.latch
	t.latchLoaded = t.stagedLoaded

	for k := range t.staged {
		t.staged[k] = cgra.Invalid()
	}

	t.stagedLoaded = false
	t.outstanding = false

	t.unit.Retire()

	t.stats.FiredSlots++
	t.pc = (t.pc + 1) % t.ctrlMem.Capacity()

	PrintState(t)

	return moved
}

func (t *Tile) transfer(phase firePhase, word cgra.CtrlWord, in, out []Line) bool {
	moved := false

	if phase != fireResults {
		moved = t.acceptInputs(word, in)
	}

	for j := 0; j < t.params.NumOutPorts; j++ {
		if !out[j].Valid || !t.selects(phase, word.Routes[j]) {
			continue
		}

		t.sendData[j].Send(out[j].Data)
		moved = true

		Trace("DataFlow",
			"Behavior", "Send",
			"Tile", t.name,
			"Cycle", t.stats.Cycles,
			"Port", j,
			"Data", out[j].Data.Value,
			"Pred", out[j].Data.Pred,
		)
	}

	for k := 0; k < t.params.NumFUInPorts; k++ {
		j := t.params.NumOutPorts + k
		if !out[j].Valid || !t.selects(phase, word.Routes[j]) {
			continue
		}

		t.staged[k] = out[j].Data
		t.stagedLoaded = true
		moved = true
	}

	return moved
}

// acceptInputs takes every token presented on the inputs. A token no output
// line selects is dropped.
func (t *Tile) acceptInputs(word cgra.CtrlWord, in []Line) bool {
	routed := make([]bool, t.params.NumInPorts)

	for _, r := range word.Routes {
		if r != cgra.RouteNone && !t.fromFU(r) {
			routed[r-1] = true
		}
	}

	moved := false

	for i, ch := range t.recvData {
		if !in[i].Valid {
			continue
		}

		ch.Accept()
		moved = true

		if routed[i] {
			continue
		}

		t.stats.DroppedTokens++

		Trace("DataFlow",
			"Behavior", "Drop",
			"Tile", t.name,
			"Cycle", t.stats.Cycles,
			"Port", i,
			"Data", in[i].Data.Value,
		)
	}

	return moved
}

func (t *Tile) traceBackpressure(word cgra.CtrlWord) {
	Trace("Backpressure",
		"Type", "OutputBusy",
		"Tile", t.name,
		"Cycle", t.stats.Cycles,
		"PC", t.pc,
		"Opt", string(word.Opcode),
	)
}
