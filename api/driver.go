// Package api defines the driver API for a CGRA tile.
package api

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"
	"github.com/sarchlab/tilesim/cgra"
	"github.com/sarchlab/tilesim/core"
)

// Driver provides the interface to control an accelerator.
type Driver interface {
	sim.Component

	// RegisterDevice registers a device to the driver. The driver will
	// establish connections to the device.
	RegisterDevice(device cgra.Device)

	// LoadConfig streams the configuration writes into the tile, one
	// (address, word) pair per cycle. The writes and the data fed with
	// FeedIn start in the same cycle, so the first data round meets the
	// first configuration write at address 0.
	LoadConfig(writes []core.ConfigWrite)

	// FeedIn provides the data to the accelerator. The data is fed into the
	// provided input ports. The stride is the difference between the
	// indices of the data that is sent to adjacent ports in the same cycle.
	FeedIn(data []uint32, portRange [2]int, stride int)

	// Collect collects the data from the accelerator. The data is collected
	// from the provided output ports. The stride is the difference between
	// the indices of the data that is collected from adjacent ports in the
	// same cycle.
	Collect(data []uint32, portRange [2]int, stride int)

	// Run will run all the tasks that have been added to the driver.
	Run()
}

type portFactory interface {
	make(c sim.Component, name string) sim.Port
}

type remotePair struct {
	local  sim.Port
	remote sim.RemotePort
}

type driverImpl struct {
	*sim.TickingComponent

	device      cgra.Device
	portFactory portFactory

	recvData  []remotePair
	sendData  []sim.Port
	recvWOpt  remotePair
	recvWAddr remotePair

	configTasks  []*configTask
	feedInTasks  []*feedInTask
	collectTasks []*collectTask
}

// Tick runs the driver for one cycle.
func (d *driverImpl) Tick() (madeProgress bool) {
	madeProgress = d.doLoadConfig() || madeProgress
	madeProgress = d.doFeedIn() || madeProgress
	madeProgress = d.doCollect() || madeProgress

	return madeProgress
}

func (d *driverImpl) doLoadConfig() bool {
	if len(d.configTasks) == 0 {
		return false
	}

	task := d.configTasks[0]
	if !d.recvWOpt.local.CanSend() || !d.recvWAddr.local.CanSend() {
		return false
	}

	w := task.writes[task.round]
	b := cgra.ConfigMsgBuilder{}.
		WithOptDst(d.recvWOpt.remote).
		WithAddrDst(d.recvWAddr.remote).
		WithAddr(w.Addr).
		WithWord(w.Word())

	optMsg := b.WithSrc(d.recvWOpt.local.AsRemote()).BuildOpt()
	addrMsg := b.WithSrc(d.recvWAddr.local.AsRemote()).BuildAddr()

	if d.recvWOpt.local.Send(optMsg) != nil || d.recvWAddr.local.Send(addrMsg) != nil {
		panic("CGRA cannot handle the configuration rate")
	}

	core.Trace("Config",
		"Behavior", "Send",
		"Time", float64(d.Engine.CurrentTime()*1e9),
		"Addr", w.Addr,
		"Opt", string(w.Opt),
	)

	task.round++
	if task.isFinished() {
		d.configTasks = d.configTasks[1:]
	}

	return true
}

func (d *driverImpl) doFeedIn() bool {
	madeProgress := false

	for _, task := range d.feedInTasks {
		madeProgress = d.doOneFeedInTask(task) || madeProgress
	}

	d.removeFinishedFeedInTasks()

	return madeProgress
}

func (d *driverImpl) removeFinishedFeedInTasks() {
	for i := len(d.feedInTasks) - 1; i >= 0; i-- {
		if d.feedInTasks[i].isFinished() {
			d.feedInTasks = append(
				d.feedInTasks[:i], d.feedInTasks[i+1:]...)
		}
	}
}

func (d *driverImpl) doOneFeedInTask(task *feedInTask) bool {
	if task.isFinished() {
		return false
	}

	pairs := d.recvData[task.portRange[0]:task.portRange[1]]

	for _, pair := range pairs {
		if !pair.local.CanSend() {
			return false
		}
	}

	for i, pair := range pairs {
		data := task.data[task.round*task.stride+i]
		msg := cgra.MoveMsgBuilder{}.
			WithSrc(pair.local.AsRemote()).
			WithDst(pair.remote).
			WithData(cgra.NewScalar(data)).
			Build()

		err := pair.local.Send(msg)
		if err != nil {
			panic("CGRA cannot handle the data rate")
		}

		core.Trace("DataFlow",
			"Behavior", "FeedIn",
			"Time", float64(d.Engine.CurrentTime()*1e9),
			"Port", task.portRange[0]+i,
			"Data", data,
		)
	}

	task.round++

	return true
}

func (d *driverImpl) doCollect() bool {
	madeProgress := false

	for _, task := range d.collectTasks {
		madeProgress = d.doOneCollectTask(task) || madeProgress
	}

	d.removeFinishedCollectTasks()

	return madeProgress
}

func (d *driverImpl) doOneCollectTask(task *collectTask) bool {
	if task.isFinished() || !d.allDataReady(task) {
		return false
	}

	for i, port := range d.sendData[task.portRange[0]:task.portRange[1]] {
		msg := port.RetrieveIncoming().(*cgra.MoveMsg)
		task.data[task.round*task.stride+i] = msg.Data.Value

		core.Trace("DataFlow",
			"Behavior", "Collect",
			"Time", float64(d.Engine.CurrentTime()*1e9),
			"Port", task.portRange[0]+i,
			"Data", msg.Data.Value,
			"Pred", msg.Data.Pred,
		)
	}

	task.round++

	return true
}

func (d *driverImpl) allDataReady(task *collectTask) bool {
	for _, port := range d.sendData[task.portRange[0]:task.portRange[1]] {
		if port.PeekIncoming() == nil {
			return false
		}
	}

	return true
}

func (d *driverImpl) removeFinishedCollectTasks() {
	for i := len(d.collectTasks) - 1; i >= 0; i-- {
		if d.collectTasks[i].isFinished() {
			d.collectTasks = append(
				d.collectTasks[:i], d.collectTasks[i+1:]...)
		}
	}
}

// RegisterDevice registers a device to the driver. The driver will
// establish connections to the device.
func (d *driverImpl) RegisterDevice(device cgra.Device) {
	d.device = device
	tile := device.GetTile()

	for i := 0; i < tile.NumInPorts(); i++ {
		d.recvData = append(d.recvData, d.connectToTile(tile, cgra.RecvData, i))
	}

	for i := 0; i < tile.NumOutPorts(); i++ {
		d.sendData = append(d.sendData, d.connectFromTile(tile, i))
	}

	d.recvWOpt = d.connectToTile(tile, cgra.RecvWOpt, 0)
	d.recvWAddr = d.connectToTile(tile, cgra.RecvWAddr, 0)
}

func (d *driverImpl) localPortName(kind cgra.PortKind, index int) string {
	return "Device" + cgra.PortName(kind, index)
}

func (d *driverImpl) connect(kind cgra.PortKind, index int, port sim.Port) sim.Port {
	portName := d.localPortName(kind, index)
	localPort := d.portFactory.make(d, d.Name()+"."+portName)
	d.AddPort(portName, localPort)

	conn := directconnection.MakeBuilder().
		WithEngine(d.Engine).
		WithFreq(d.Freq).
		Build(localPort.Name() + "." + port.Name())
	conn.PlugIn(localPort)
	conn.PlugIn(port)

	return localPort
}

func (d *driverImpl) connectToTile(
	tile cgra.Tile,
	kind cgra.PortKind,
	index int,
) remotePair {
	port := tile.GetPortByName(cgra.PortName(kind, index))
	localPort := d.connect(kind, index, port)

	return remotePair{local: localPort, remote: port.AsRemote()}
}

func (d *driverImpl) connectFromTile(tile cgra.Tile, index int) sim.Port {
	port := tile.GetPortByName(cgra.PortName(cgra.SendData, index))
	localPort := d.connect(cgra.SendData, index, port)
	tile.SetRemotePort(cgra.SendData, index, localPort.AsRemote())

	return localPort
}

type configTask struct {
	writes []core.ConfigWrite
	round  int
}

func (t *configTask) isFinished() bool {
	return t.round >= len(t.writes)
}

// LoadConfig queues the configuration writes.
func (d *driverImpl) LoadConfig(writes []core.ConfigWrite) {
	if len(writes) == 0 {
		return
	}

	d.configTasks = append(d.configTasks, &configTask{
		writes: append([]core.ConfigWrite(nil), writes...),
	})
}

type feedInTask struct {
	data      []uint32
	portRange [2]int
	stride    int
	round     int
}

func (t *feedInTask) isFinished() bool {
	return t.round >= len(t.data)/t.stride
}

func (d *driverImpl) checkPortRange(portRange [2]int, stride, numPorts int) {
	if portRange[0] < 0 || portRange[1] > numPorts || portRange[0] >= portRange[1] {
		panic(fmt.Sprintf("invalid port range %v for %d ports", portRange, numPorts))
	}

	if stride < portRange[1]-portRange[0] {
		panic(fmt.Sprintf("stride %d is smaller than the port range %v", stride, portRange))
	}
}

// FeedIn queues the data to send to the input ports.
func (d *driverImpl) FeedIn(data []uint32, portRange [2]int, stride int) {
	d.checkPortRange(portRange, stride, len(d.recvData))

	d.feedInTasks = append(d.feedInTasks, &feedInTask{
		data:      data,
		portRange: portRange,
		stride:    stride,
	})
}

type collectTask struct {
	data      []uint32
	portRange [2]int
	stride    int
	round     int
}

func (t *collectTask) isFinished() bool {
	return t.round >= len(t.data)/t.stride
}

// Collect queues the collection of data from the output ports.
func (d *driverImpl) Collect(data []uint32, portRange [2]int, stride int) {
	d.checkPortRange(portRange, stride, len(d.sendData))

	d.collectTasks = append(d.collectTasks, &collectTask{
		data:      data,
		portRange: portRange,
		stride:    stride,
	})
}

// Run runs all the tasks in the driver. It panics if the simulation runs out
// of events while a task is still pending, as the device can then never
// finish it.
func (d *driverImpl) Run() {
	d.TickNow()

	err := d.Engine.Run()
	if err != nil {
		panic(err)
	}

	if d.pendingTasks() > 0 {
		panic(fmt.Sprintf(
			"%s stopped with %d config, %d feed-in and %d collect tasks pending",
			d.Name(), len(d.configTasks), len(d.feedInTasks), len(d.collectTasks)))
	}
}

func (d *driverImpl) pendingTasks() int {
	return len(d.configTasks) + len(d.feedInTasks) + len(d.collectTasks)
}
