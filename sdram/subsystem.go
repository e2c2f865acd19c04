// Package sdram is the entry point of the DRAM bring-up. A Subsystem finds
// out which package is populated, picks its parameter record, and brings the
// controller up on a cold boot or back from deep sleep.
package sdram

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/lp0"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/patch"
	"github.com/sarchlab/sdraminit/sdram/strap"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/naming"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// Subsystem is the memory subsystem of one SoC.
type Subsystem struct {
	name      string
	bus       hw.Bus
	clock     timing.Clock
	rev       params.Revision
	pollLimit int
	hooks     []hooking.Hook

	fuseRead bool
	odm4     uint32

	seq     *emc.Sequencer
	state   *emc.ControllerState
	manager *lp0.Manager
}

// Name returns the name of the subsystem.
func (s *Subsystem) Name() string {
	return s.name
}

// Revision returns the silicon revision.
func (s *Subsystem) Revision() params.Revision {
	return s.rev
}

// PackageID returns the id of the populated DRAM package. The straps are
// read on the first call only.
func (s *Subsystem) PackageID() strap.PackageID {
	return strap.Decode(s.straps(), s.rev)
}

func (s *Subsystem) straps() uint32 {
	if !s.fuseRead {
		s.odm4 = s.bus.Read32(hw.FuseReservedOdm4)
		s.fuseRead = true
	}

	return s.odm4
}

// Resolved returns how the populated package maps onto the tables.
func (s *Subsystem) Resolved() params.Resolved {
	return patch.Resolve(s.rev, s.PackageID())
}

// PatchedParameters returns the record of the populated package, with the
// patches of its group applied.
func (s *Subsystem) PatchedParameters() (params.Record, error) {
	_, rec, err := patch.Select(s.rev, s.PackageID())
	if err != nil {
		return params.Record{}, fmt.Errorf("%s: %w", s.name, err)
	}

	return rec, nil
}

// ParametersForSecondaryRevision returns the T210B01 record of the populated
// package, whatever revision the subsystem runs on. The id is decoded with
// the T210B01 fuse layout, so ids above 31 are found on T210 as well.
func (s *Subsystem) ParametersForSecondaryRevision() (params.Record, error) {
	id := strap.Decode(s.straps(), params.RevisionB)

	_, rec, err := patch.Select(params.RevisionB, id)
	if err != nil {
		return params.Record{}, fmt.Errorf("%s: %w", s.name, err)
	}

	return rec, nil
}

// State returns the state of the controller.
func (s *Subsystem) State() emc.State {
	if s.seq == nil {
		return emc.Uninitialized
	}

	return s.seq.State()
}

// Controller returns the handle to the controller, or nil before the
// controller has been set up.
func (s *Subsystem) Controller() *emc.ControllerState {
	if s.seq == nil {
		return nil
	}

	return s.seq.Controller()
}

// Initialize brings the DRAM up from a cold boot.
func (s *Subsystem) Initialize() error {
	if err := s.setup(); err != nil {
		return err
	}

	state, err := s.seq.Initialize()
	if err != nil {
		return err
	}

	s.state = state

	return nil
}

// SaveSleepParameters keeps the controller state in the scratch registers
// and puts the DRAM into self refresh.
func (s *Subsystem) SaveSleepParameters() (lp0.Snapshot, error) {
	if s.seq == nil {
		return lp0.Snapshot{}, fmt.Errorf("%s: %w", s.name, emc.ErrNotInitialized)
	}

	return s.manager.Save(s.seq.Controller())
}

// Resume brings the DRAM back from deep sleep with a snapshot taken by
// SaveSleepParameters. After the SoC lost power, the snapshot can be read back
// with LoadSleepParameters.
func (s *Subsystem) Resume(snap lp0.Snapshot) error {
	if err := s.setup(); err != nil {
		return err
	}

	if err := s.manager.Restore(snap); err != nil {
		return err
	}

	s.state = s.seq.Controller()

	return nil
}

// LoadSleepParameters reads the snapshot kept in the scratch registers.
func (s *Subsystem) LoadSleepParameters() lp0.Snapshot {
	return lp0.Load(s.bus)
}

// ReadModeRegister reads a mode register of every device.
func (s *Subsystem) ReadModeRegister(
	mr emc.ModeRegister,
) (emc.ModeRegisterValue, error) {
	if s.seq == nil {
		return emc.ModeRegisterValue{},
			fmt.Errorf("%s: %w", s.name, emc.ErrNotInitialized)
	}

	return s.seq.ReadModeRegister(mr)
}

// setup builds the sequencer for the populated package once.
func (s *Subsystem) setup() error {
	if s.seq != nil {
		return nil
	}

	rec, err := s.PatchedParameters()
	if err != nil {
		return err
	}

	b := emc.MakeBuilder().
		WithBus(s.bus).
		WithRevision(s.rev).
		WithRecord(rec).
		WithPollLimit(s.pollLimit)
	if s.clock != nil {
		b = b.WithClock(s.clock)
	}

	s.seq = b.Build(naming.BuildName(s.name, "EMC"))
	for _, h := range s.hooks {
		s.seq.AcceptHook(h)
	}

	s.manager = lp0.NewManager(s.bus, s.seq)

	return nil
}
