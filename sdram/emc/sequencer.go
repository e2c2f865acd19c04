// Package emc brings up the external memory controller. A Sequencer owns
// the controller: it programs a parameter record into the hardware, trains
// it, checks the DRAM answers, and later brings it back from sleep.
package emc

import (
	"fmt"
	"sort"

	"github.com/rs/xid"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// Field is the part of a register selected by Mask.
type Field struct {
	Mask  uint32
	Value uint32
}

// Saved holds the register fields kept over a sleep cycle, by address.
type Saved map[uint32]Field

// Sequencer drives the controller through bring-up.
type Sequencer struct {
	hooking.HookableBase

	name      string
	bus       hw.Bus
	clock     timing.Clock
	rev       params.Revision
	record    params.Record
	pollLimit int
	program   Program

	state        State
	verification Verification

	warm    bool
	saved   Saved
	written map[uint32]bool
	taskID  string
}

// Name returns the name of the sequencer.
func (s *Sequencer) Name() string {
	return s.name
}

// State returns the state of the controller.
func (s *Sequencer) State() State {
	return s.state
}

// Record returns the parameter record being programmed.
func (s *Sequencer) Record() params.Record {
	return s.record
}

// Program returns the table apply steps in order.
func (s *Sequencer) Program() Program {
	return s.program
}

// Controller returns the handle to the controller.
func (s *Sequencer) Controller() *ControllerState {
	return &ControllerState{seq: s}
}

type phase struct {
	name string
	run  func() error
}

// Initialize runs the cold boot sequence. It can succeed at most once.
func (s *Sequencer) Initialize() (*ControllerState, error) {
	switch s.state {
	case Ready, Suspended:
		return nil, ErrAlreadyInitialized
	case Failed:
		return nil, ErrControllerFailed
	}

	s.warm = false
	s.saved = nil

	err := s.run("initialize", []phase{
		{"pre_init", s.preInit},
		{"table_apply", s.tableApply},
		{"calibration", s.calibrate},
		{"verification", s.verify},
		{"commit", s.commit},
	})
	if err != nil {
		return nil, err
	}

	return s.Controller(), nil
}

// Resume brings the controller back after sleep. The table is applied again
// with the saved fields in place of the record values, the trained values
// are written back, and only the auto calibration runs.
func (s *Sequencer) Resume(saved Saved) (*ControllerState, error) {
	switch s.state {
	case Ready:
		return nil, ErrAlreadyInitialized
	case Failed:
		return nil, ErrControllerFailed
	}

	s.warm = true
	s.saved = saved
	s.written = make(map[uint32]bool)

	defer func() {
		s.warm = false
		s.saved = nil
		s.written = nil
	}()

	err := s.run("resume", []phase{
		{"pre_init", s.preInit},
		{"replay", s.tableApply},
		{"restore_trained", s.restoreTrained},
		{"warm_calibration", s.autoCalibrate},
		{"verification", s.verify},
		{"commit", s.commit},
	})
	if err != nil {
		return nil, err
	}

	return s.Controller(), nil
}

func (s *Sequencer) run(what string, phases []phase) error {
	rootID := s.startTask(what, "", "sdram")

	for _, p := range phases {
		s.taskID = s.startTask(p.name, rootID, "sdram_phase")

		err := p.run()
		if err != nil {
			s.state = Failed
			err = fmt.Errorf("%s: %s: %w", s.name, p.name, err)
			s.endTask(s.taskID, err)
			s.endTask(rootID, err)

			return err
		}

		s.endTask(s.taskID, nil)
	}

	s.endTask(rootID, nil)

	return nil
}

func (s *Sequencer) startTask(what, parentID, kind string) string {
	id := xid.New().String()

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{
			Domain: s,
			Pos:    hooking.HookPosTaskStart,
			Item: hooking.TaskStart{
				ID:       id,
				ParentID: parentID,
				Kind:     kind,
				What:     what,
				Where:    s.name,
			},
		})
	}

	return id
}

func (s *Sequencer) endTask(id string, err error) {
	if s.NumHooks() == 0 {
		return
	}

	end := hooking.TaskEnd{ID: id}
	if err != nil {
		end.Err = err.Error()
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    hooking.HookPosTaskEnd,
		Item:   end,
	})
}

func (s *Sequencer) stepTask(what string) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    hooking.HookPosTaskStep,
		Item: hooking.TaskStep{
			TaskID: s.taskID,
			StepID: xid.New().String(),
			Kind:   "step",
			What:   what,
		},
	})
}

func (s *Sequencer) preInit() error {
	s.write(hw.PmcIoDpd3Req, hw.PmcIoDpdReqOff)
	s.write(hw.PmcIoDpd4Req, hw.PmcIoDpdReqOff)
	s.wait(params.PmcIoDpdReqWait)

	s.writeParam(params.PmcVddpSel)
	s.wait(params.PmcVddpSelWait)

	s.writeParam(params.PmcDdrPwr)
	s.writeParam(params.PmcDdrCfg)
	s.writeParam(params.PmcNoIoPower)

	if s.rev == params.RevisionB {
		s.writeParam(params.PmcWeakBias)
	}

	s.write(hw.ClkRstClkEnbHSet, hw.ClkHEmc|hw.ClkHMem)
	s.write(hw.ClkRstRstDevHClr, hw.ClkHEmc|hw.ClkHMem)

	if s.rev == params.RevisionB {
		s.writeParam(params.EmcPmacroBgBiasCtrl0)
	}

	s.writeParam(params.EmcPmacroVttgenCtrl0)

	return nil
}

func (s *Sequencer) tableApply() error {
	for _, step := range s.program {
		s.stepTask(step.Name)

		if err := step.Run(s); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}

	return nil
}

func (s *Sequencer) calibrate() error {
	if err := s.autoCalibrate(); err != nil {
		return err
	}

	return s.train()
}

func (s *Sequencer) autoCalibrate() error {
	s.write(hw.EmcAutoCalConfig,
		s.value(params.EmcAutoCalConfig)|hw.EmcAutoCalStart)

	return s.poll(hw.EmcAutoCalStatus, hw.EmcAutoCalActive, 0,
		ErrCalibrationTimeout)
}

func (s *Sequencer) train() error {
	s.writeParam(params.EmcTrainingCtrl)
	s.write(hw.EmcTrainingCmd, hw.EmcTrainingStart)

	for ch := 0; ch < 2; ch++ {
		if err := s.waitTraining(ch); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sequencer) waitTraining(ch int) error {
	addr := hw.EmcChannel(ch, hw.EmcTrainingStatusOff)

	for i := 0; i < s.pollLimit; i++ {
		v := s.bus.Read32(addr)

		if v&hw.EmcTrainingError != 0 {
			return fmt.Errorf("channel %d: %w", ch, ErrTrainingFailed)
		}

		if v&hw.EmcTrainingDone != 0 {
			return nil
		}

		s.clock.DelayUs(1)
	}

	return fmt.Errorf("channel %d: %w after %d polls",
		ch, ErrCalibrationTimeout, s.pollLimit)
}

// Fields that no table apply step writes, such as trained values, are
// written back in address order.
func (s *Sequencer) restoreTrained() error {
	var addrs []uint32

	for addr := range s.saved {
		if !s.written[addr] {
			addrs = append(addrs, addr)
		}
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, addr := range addrs {
		s.write(addr, 0)
	}

	return nil
}

func (s *Sequencer) commit() error {
	s.write(hw.McEmemCfgAccessCtrl, hw.McEmemCfgAccessLocked)
	s.state = Ready

	return nil
}

func (s *Sequencer) suspend() error {
	if s.state != Ready {
		return ErrNotInitialized
	}

	hw.SetBits(s.bus, hw.EmcSelfRef, hw.EmcSelfRefEnable)
	s.state = Suspended

	return nil
}

func (s *Sequencer) value(p params.Param) uint32 {
	return s.record.Get(p)
}

func (s *Sequencer) write(addr, v uint32) {
	if f, ok := s.saved[addr]; ok {
		v = v&^f.Mask | f.Value&f.Mask
	}

	if s.written != nil {
		s.written[addr] = true
	}

	s.bus.Write32(addr, v)
}

func (s *Sequencer) writeParam(p params.Param) {
	addr, ok := paramRegs[p]
	if !ok {
		panic(p.String() + " is not a register")
	}

	s.write(addr, s.value(p))
}

func (s *Sequencer) writeParams(list []params.Param) {
	for _, p := range list {
		s.writeParam(p)
	}
}

func (s *Sequencer) wait(p params.Param) {
	if !p.IsWait() {
		panic(p.String() + " is not a wait")
	}

	if us := s.value(p); us > 0 {
		s.clock.DelayUs(us)
	}
}

func (s *Sequencer) poll(addr, mask, want uint32, timeout error) error {
	for i := 0; i < s.pollLimit; i++ {
		if s.bus.Read32(addr)&mask == want {
			return nil
		}

		s.clock.DelayUs(1)
	}

	return fmt.Errorf("%w: %s after %d polls",
		timeout, hw.RegName(addr), s.pollLimit)
}
