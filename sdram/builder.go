package sdram

import (
	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/naming"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// Builder can build memory subsystems.
type Builder struct {
	bus       hw.Bus
	clock     timing.Clock
	rev       params.Revision
	pollLimit int
	hooks     []hooking.Hook
}

// MakeBuilder creates a builder with the default settings.
func MakeBuilder() Builder {
	return Builder{
		rev:       params.RevisionA,
		pollLimit: emc.DefaultPollLimit,
	}
}

// WithBus sets the bus the SoC registers are reached through.
func (b Builder) WithBus(bus hw.Bus) Builder {
	b.bus = bus
	return b
}

// WithClock sets the clock used for settle times.
func (b Builder) WithClock(clock timing.Clock) Builder {
	b.clock = clock
	return b
}

// WithRevision sets the silicon revision. The revision is never detected.
func (b Builder) WithRevision(rev params.Revision) Builder {
	b.rev = rev
	return b
}

// WithPollLimit sets the number of status polls before a calibration step
// times out.
func (b Builder) WithPollLimit(n int) Builder {
	b.pollLimit = n
	return b
}

// WithHook attaches a hook to the controller sequencer.
func (b Builder) WithHook(hook hooking.Hook) Builder {
	b.hooks = append(append([]hooking.Hook(nil), b.hooks...), hook)
	return b
}

// Build creates a memory subsystem.
func (b Builder) Build(name string) *Subsystem {
	naming.NameMustBeValid(name)

	if b.bus == nil {
		panic("a memory subsystem needs a bus")
	}

	if b.pollLimit <= 0 {
		panic("poll limit must be positive")
	}

	return &Subsystem{
		name:      name,
		bus:       b.bus,
		clock:     b.clock,
		rev:       b.rev,
		pollLimit: b.pollLimit,
		hooks:     b.hooks,
	}
}
