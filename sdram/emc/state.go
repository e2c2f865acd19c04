package emc

import (
	"fmt"

	"github.com/sarchlab/sdraminit/sdram/params"
)

// State is the lifecycle state of a controller.
type State int

// The states a controller goes through. A controller starts Uninitialized,
// becomes Ready after a successful cold boot or resume, and Suspended while
// the DRAM sits in self refresh. Failed is final.
const (
	Uninitialized State = iota
	Ready
	Failed
	Suspended
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	case Suspended:
		return "Suspended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ControllerState is the handle to a brought up controller. It does not copy
// any register; reads go to the live hardware.
type ControllerState struct {
	seq *Sequencer
}

// Name returns the name of the sequencer that owns the controller.
func (s *ControllerState) Name() string {
	return s.seq.name
}

// State returns the current state of the controller.
func (s *ControllerState) State() State {
	return s.seq.state
}

// Revision returns the silicon revision of the controller.
func (s *ControllerState) Revision() params.Revision {
	return s.seq.rev
}

// Record returns the parameter record the controller was brought up with.
func (s *ControllerState) Record() params.Record {
	return s.seq.record
}

// Verification returns the result of the last mode register check.
func (s *ControllerState) Verification() Verification {
	return s.seq.verification
}

// Peek reads a live register.
func (s *ControllerState) Peek(addr uint32) uint32 {
	return s.seq.bus.Read32(addr)
}

// Suspend puts the DRAM into self refresh. It is only legal on a Ready
// controller.
func (s *ControllerState) Suspend() error {
	return s.seq.suspend()
}
