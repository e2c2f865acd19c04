package timing

import (
	"github.com/sarchlab/sdraminit/sim/hooking"
)

// HookPosDelay is the hook position triggered every time a clock is asked to
// wait. The item is a Delay.
var HookPosDelay = &hooking.HookPos{Name: "HookPosDelay"}

// Delay describes one busy wait.
type Delay struct {
	Start VTimeInSec
	Us    uint32
}

// A Clock is the time source of the bring-up code. There is no scheduler this
// early in boot, so every wait is a busy wait that only returns once the
// requested time has passed.
type Clock interface {
	// Now returns the current time.
	Now() VTimeInSec

	// DelayUs spins until at least us microseconds have passed.
	DelayUs(us uint32)
}

// SimClock is a Clock whose time only moves when somebody waits on it or
// calls Advance. Waits return immediately.
type SimClock struct {
	hooking.HookableBase

	name string
	now  VTimeInSec
}

// NewSimClock creates a SimClock starting at time 0.
func NewSimClock(name string) *SimClock {
	return &SimClock{name: name}
}

// Name returns the name of the clock.
func (c *SimClock) Name() string {
	return c.name
}

// Now returns the current virtual time.
func (c *SimClock) Now() VTimeInSec {
	return c.now
}

// DelayUs moves the virtual time forward by us microseconds.
func (c *SimClock) DelayUs(us uint32) {
	if c.NumHooks() > 0 {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosDelay,
			Item:   Delay{Start: c.now, Us: us},
		})
	}

	c.now += Microseconds(us)
}

// Advance moves the virtual time forward by d.
func (c *SimClock) Advance(d VTimeInSec) {
	if d < 0 {
		panic("cannot move time backwards")
	}

	c.now += d
}

// CounterReader reads a 32-bit hardware register.
type CounterReader interface {
	Read32(addr uint32) uint32
}

// CounterClock is a Clock backed by a free-running 1 MHz hardware counter.
// The counter wraps around every ~71 minutes, which unsigned subtraction
// handles as long as a single wait is shorter than that.
type CounterClock struct {
	bus  CounterReader
	addr uint32
}

// NewCounterClock creates a CounterClock that reads the microsecond counter
// at addr.
func NewCounterClock(bus CounterReader, addr uint32) *CounterClock {
	return &CounterClock{bus: bus, addr: addr}
}

// Now returns the counter value in seconds.
func (c *CounterClock) Now() VTimeInSec {
	return Microseconds(c.bus.Read32(c.addr))
}

// DelayUs polls the counter until us microseconds have elapsed.
func (c *CounterClock) DelayUs(us uint32) {
	start := c.bus.Read32(c.addr)

	for c.bus.Read32(c.addr)-start <= us {
	}
}

type timeTeller struct {
	clock Clock
}

func (t timeTeller) Now() float64 {
	return float64(t.clock.Now())
}

// AsTimeTeller lets tracers read the time of a clock.
func AsTimeTeller(c Clock) hooking.TimeTeller {
	return timeTeller{clock: c}
}
