// Package hw describes the SoC register space the bring-up code talks to and
// the bus abstraction it talks through.
package hw

import (
	"github.com/sarchlab/sdraminit/sim/hooking"
)

// A Bus performs 32-bit register accesses. On target it is backed by MMIO; off
// target it is backed by a simulated register file.
type Bus interface {
	Read32(addr uint32) uint32
	Write32(addr, value uint32)
}

// Hook positions triggered by a TracedBus. The item is an Access.
var (
	HookPosRegRead  = &hooking.HookPos{Name: "HookPosRegRead"}
	HookPosRegWrite = &hooking.HookPos{Name: "HookPosRegWrite"}
)

// Access describes one register access.
type Access struct {
	Write bool
	Addr  uint32
	Value uint32
}

// Name returns the register name of the access.
func (a Access) Name() string {
	return RegName(a.Addr)
}

// TracedBus forwards accesses to another bus and reports them to its hooks.
type TracedBus struct {
	hooking.HookableBase

	name   string
	inner  Bus
	reads  bool
	writes bool
}

// NewTracedBus wraps inner. Reads are only reported when traceReads is set
// since status polling produces a lot of them.
func NewTracedBus(name string, inner Bus, traceReads bool) *TracedBus {
	return &TracedBus{
		name:   name,
		inner:  inner,
		reads:  traceReads,
		writes: true,
	}
}

// Name returns the name of the bus.
func (b *TracedBus) Name() string {
	return b.name
}

// Read32 reads a register.
func (b *TracedBus) Read32(addr uint32) uint32 {
	v := b.inner.Read32(addr)

	if b.reads && b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosRegRead,
			Item:   Access{Addr: addr, Value: v},
		})
	}

	return v
}

// Write32 writes a register.
func (b *TracedBus) Write32(addr, value uint32) {
	b.inner.Write32(addr, value)

	if b.writes && b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosRegWrite,
			Item:   Access{Write: true, Addr: addr, Value: value},
		})
	}
}

// SetBits does a read-modify-write that sets mask.
func SetBits(b Bus, addr, mask uint32) {
	b.Write32(addr, b.Read32(addr)|mask)
}

// ClearBits does a read-modify-write that clears mask.
func ClearBits(b Bus, addr, mask uint32) {
	b.Write32(addr, b.Read32(addr)&^mask)
}
