// Package lp0 keeps the controller state over deep sleep. The state goes to
// the PMC scratch registers, which keep their content while the SoC is off.
package lp0

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/emc"
)

// Manager saves and restores the state of one controller.
type Manager struct {
	bus hw.Bus
	seq *emc.Sequencer
}

// NewManager creates a manager for the controller that seq drives.
func NewManager(bus hw.Bus, seq *emc.Sequencer) *Manager {
	if bus == nil || seq == nil {
		panic("lp0 manager needs a bus and a sequencer")
	}

	return &Manager{bus: bus, seq: seq}
}

// Save packs the live controller registers into the scratch registers and
// puts the DRAM into self refresh.
func (m *Manager) Save(state *emc.ControllerState) (Snapshot, error) {
	if state.State() != emc.Ready {
		return Snapshot{}, fmt.Errorf("%s: lp0 save: %w",
			state.Name(), emc.ErrNotInitialized)
	}

	snap := pack(state.Peek)
	for i, w := range snap.Words() {
		m.bus.Write32(hw.PmcScratch(i), w)
	}

	if err := state.Suspend(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: lp0 save: %w", state.Name(), err)
	}

	return snap, nil
}

// Load reads a snapshot back from the scratch registers.
func (m *Manager) Load() Snapshot {
	return Load(m.bus)
}

// Load reads a snapshot from the scratch registers of bus.
func Load(bus hw.Bus) Snapshot {
	var snap Snapshot
	for i := 0; i < NumWords; i++ {
		snap.setWord(i, bus.Read32(hw.PmcScratch(i)))
	}

	return snap
}

// Restore brings the controller back with the fields of snap. The snapshot
// must come from Save or Load.
func (m *Manager) Restore(snap Snapshot) error {
	_, err := m.seq.Resume(Unpack(snap))
	return err
}

// Unpack returns the register fields a snapshot holds.
func Unpack(snap Snapshot) emc.Saved {
	saved := make(emc.Saved)

	for _, f := range layout {
		field := saved[f.reg]
		field.Mask |= f.srcMask()
		field.Value = f.unpack(field.Value, snap.Word(f.scratch))
		saved[f.reg] = field
	}

	return saved
}
