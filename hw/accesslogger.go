package hw

import (
	"log"

	"github.com/sarchlab/sdraminit/sim/hooking"
)

// AccessLogger is a hook that prints register accesses.
type AccessLogger struct {
	logger *log.Logger
}

// NewAccessLogger returns an AccessLogger writing into logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	return &AccessLogger{logger: logger}
}

// Func prints the access.
func (h *AccessLogger) Func(ctx hooking.HookCtx) {
	a, ok := ctx.Item.(Access)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosRegWrite:
		h.logger.Printf("W %08x %-32s <- %08x", a.Addr, a.Name(), a.Value)
	case HookPosRegRead:
		h.logger.Printf("R %08x %-32s -> %08x", a.Addr, a.Name(), a.Value)
	}
}

// AccessRecorder keeps every register write in memory, in order.
type AccessRecorder struct {
	writes []Access
}

// NewAccessRecorder creates an empty recorder.
func NewAccessRecorder() *AccessRecorder {
	return &AccessRecorder{}
}

// Func records writes.
func (r *AccessRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosRegWrite {
		return
	}

	r.writes = append(r.writes, ctx.Item.(Access))
}

// Writes returns the recorded writes.
func (r *AccessRecorder) Writes() []Access {
	return r.writes
}

// IndexOf returns the position of the first write to addr, or -1.
func (r *AccessRecorder) IndexOf(addr uint32) int {
	for i, w := range r.writes {
		if w.Addr == addr {
			return i
		}
	}

	return -1
}

// LastIndexOf returns the position of the last write to addr, or -1.
func (r *AccessRecorder) LastIndexOf(addr uint32) int {
	for i := len(r.writes) - 1; i >= 0; i-- {
		if r.writes[i].Addr == addr {
			return i
		}
	}

	return -1
}

// Reset forgets all recorded writes.
func (r *AccessRecorder) Reset() {
	r.writes = nil
}
