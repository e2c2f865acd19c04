package emc

import (
	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/naming"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// DefaultPollLimit is the number of status polls after which a calibration
// step is considered stuck.
const DefaultPollLimit = 1000

// Builder can build sequencers.
type Builder struct {
	bus       hw.Bus
	clock     timing.Clock
	rev       params.Revision
	record    params.Record
	hasRecord bool
	pollLimit int
	program   Program
}

// MakeBuilder creates a builder with the default settings.
func MakeBuilder() Builder {
	return Builder{
		pollLimit: DefaultPollLimit,
		program:   DefaultProgram(),
	}
}

// WithBus sets the bus the registers are reached through.
func (b Builder) WithBus(bus hw.Bus) Builder {
	b.bus = bus
	return b
}

// WithClock sets the clock used for settle times. When not set, the
// microsecond counter of the bus is used.
func (b Builder) WithClock(clock timing.Clock) Builder {
	b.clock = clock
	return b
}

// WithRevision sets the silicon revision.
func (b Builder) WithRevision(rev params.Revision) Builder {
	b.rev = rev
	return b
}

// WithRecord sets the parameter record to program.
func (b Builder) WithRecord(record params.Record) Builder {
	b.record = record
	b.hasRecord = true

	return b
}

// WithPollLimit sets the number of status polls before a step times out.
func (b Builder) WithPollLimit(n int) Builder {
	b.pollLimit = n
	return b
}

// WithProgram replaces the order of the table apply steps.
func (b Builder) WithProgram(p Program) Builder {
	b.program = p
	return b
}

// Build creates a sequencer.
func (b Builder) Build(name string) *Sequencer {
	naming.NameMustBeValid(name)
	b.busMustBeGiven()
	b.recordMustBeGiven()
	b.pollLimitMustBePositive()

	clock := b.clock
	if clock == nil {
		clock = timing.NewCounterClock(b.bus, hw.TimerUsCounter)
	}

	return &Sequencer{
		name:      name,
		bus:       b.bus,
		clock:     clock,
		rev:       b.rev,
		record:    b.record,
		pollLimit: b.pollLimit,
		program:   b.program,
	}
}

func (b Builder) busMustBeGiven() {
	if b.bus == nil {
		panic("a sequencer needs a bus")
	}
}

func (b Builder) recordMustBeGiven() {
	if !b.hasRecord {
		panic("a sequencer needs a parameter record")
	}

	if b.record.Revision != b.rev {
		panic("the record is for " + b.record.Revision.String() +
			", not " + b.rev.String())
	}
}

func (b Builder) pollLimitMustBePositive() {
	if b.pollLimit <= 0 {
		panic("poll limit must be positive")
	}
}
