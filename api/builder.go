package api

import "github.com/sarchlab/akita/v4/sim"

// Ports on the driver side hold a single message each way, like the tile
// ports they connect to.
type defaultPortFactory struct {
}

func (f defaultPortFactory) make(c sim.Component, name string) sim.Port {
	return sim.NewPort(c, 1, 1, name)
}

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver. It should match the frequency of
// the device, as the driver sends one configuration write and one data round
// per cycle.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// Build creates a driver. The frequency defaults to 1 GHz.
func (b DriverBuilder) Build(name string) Driver {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}

	d := &driverImpl{
		portFactory: defaultPortFactory{},
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
