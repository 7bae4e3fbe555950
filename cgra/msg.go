package cgra

import "github.com/sarchlab/akita/v4/sim"

// MoveMsg moves a data token into or out of a tile.
type MoveMsg struct {
	sim.MsgMeta

	Data Data
}

// Meta returns the meta data of the msg.
func (m *MoveMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the msg with a new ID.
func (m *MoveMsg) Clone() sim.Msg {
	clone := *m
	clone.ID = sim.GetIDGenerator().Generate()

	return &clone
}

// MoveMsgBuilder is a factory for MoveMsg.
type MoveMsgBuilder struct {
	src, dst sim.RemotePort
	data     Data
}

// WithSrc sets the source port of the msg.
func (m MoveMsgBuilder) WithSrc(src sim.RemotePort) MoveMsgBuilder {
	m.src = src
	return m
}

// WithDst sets the destination port of the msg.
func (m MoveMsgBuilder) WithDst(dst sim.RemotePort) MoveMsgBuilder {
	m.dst = dst
	return m
}

// WithData sets the data of the msg.
func (m MoveMsgBuilder) WithData(data Data) MoveMsgBuilder {
	m.data = data
	return m
}

// Build creates a MoveMsg.
func (m MoveMsgBuilder) Build() *MoveMsg {
	return &MoveMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: m.src,
			Dst: m.dst,
		},
		Data: m.data,
	}
}

// ConfigOptMsg carries a configuration word on the recv_wopt channel.
type ConfigOptMsg struct {
	sim.MsgMeta

	Word CtrlWord
}

// Meta returns the meta data of the msg.
func (m *ConfigOptMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the msg with a new ID.
func (m *ConfigOptMsg) Clone() sim.Msg {
	clone := *m
	clone.ID = sim.GetIDGenerator().Generate()
	clone.Word = m.Word.Clone()

	return &clone
}

// ConfigAddrMsg carries a control memory address on the recv_waddr channel.
type ConfigAddrMsg struct {
	sim.MsgMeta

	Addr int
}

// Meta returns the meta data of the msg.
func (m *ConfigAddrMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the msg with a new ID.
func (m *ConfigAddrMsg) Clone() sim.Msg {
	clone := *m
	clone.ID = sim.GetIDGenerator().Generate()

	return &clone
}

// ConfigMsgBuilder builds the pair of messages that programs one control
// memory slot.
type ConfigMsgBuilder struct {
	src, optDst, addrDst sim.RemotePort
	addr                 int
	word                 CtrlWord
}

// WithSrc sets the source port of both msgs.
func (b ConfigMsgBuilder) WithSrc(src sim.RemotePort) ConfigMsgBuilder {
	b.src = src
	return b
}

// WithOptDst sets the port that receives the word.
func (b ConfigMsgBuilder) WithOptDst(dst sim.RemotePort) ConfigMsgBuilder {
	b.optDst = dst
	return b
}

// WithAddrDst sets the port that receives the address.
func (b ConfigMsgBuilder) WithAddrDst(dst sim.RemotePort) ConfigMsgBuilder {
	b.addrDst = dst
	return b
}

// WithAddr sets the control memory address.
func (b ConfigMsgBuilder) WithAddr(addr int) ConfigMsgBuilder {
	b.addr = addr
	return b
}

// WithWord sets the configuration word.
func (b ConfigMsgBuilder) WithWord(word CtrlWord) ConfigMsgBuilder {
	b.word = word
	return b
}

// BuildOpt creates the recv_wopt msg.
func (b ConfigMsgBuilder) BuildOpt() *ConfigOptMsg {
	return &ConfigOptMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: b.src,
			Dst: b.optDst,
		},
		Word: b.word.Clone(),
	}
}

// BuildAddr creates the recv_waddr msg.
func (b ConfigMsgBuilder) BuildAddr() *ConfigAddrMsg {
	return &ConfigAddrMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: b.src,
			Dst: b.addrDst,
		},
		Addr: b.addr,
	}
}
