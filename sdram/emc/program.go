package emc

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
)

// The register each register-valued param is written to. PLLM dividers and
// pin values are composed into shared registers and are not listed.
var paramRegs = map[params.Param]uint32{
	params.PllmSetupControl:  hw.ClkRstPllmMisc1,
	params.PllmKcpKvco:       hw.ClkRstPllmMisc2,
	params.EmcClockSource:    hw.ClkRstClkSourceEmc,
	params.EmcClockSourceDll: hw.ClkRstClkSourceEmcD,

	params.PmcDdrPwr:            hw.PmcDdrPwr,
	params.PmcVddpSel:           hw.PmcVddpSel,
	params.PmcDdrCfg:            hw.PmcDdrCfg,
	params.PmcNoIoPower:         hw.PmcNoIoPower,
	params.PmcWeakBias:          hw.PmcWeakBias,
	params.EmcPmacroBgBiasCtrl0: hw.EmcPmacroBgBiasCtrl0,
	params.EmcPmacroVttgenCtrl0: hw.EmcPmacroVttgenCtrl0,

	params.EmcRc:              hw.EmcRc,
	params.EmcRfc:             hw.EmcRfc,
	params.EmcRas:             hw.EmcRas,
	params.EmcRp:              hw.EmcRp,
	params.EmcR2w:             hw.EmcR2w,
	params.EmcW2r:             hw.EmcW2r,
	params.EmcR2p:             hw.EmcR2p,
	params.EmcW2p:             hw.EmcW2p,
	params.EmcRdRcd:           hw.EmcRdRcd,
	params.EmcWrRcd:           hw.EmcWrRcd,
	params.EmcRrd:             hw.EmcRrd,
	params.EmcRext:            hw.EmcRext,
	params.EmcWdv:             hw.EmcWdv,
	params.EmcQuse:            hw.EmcQuse,
	params.EmcRdv:             hw.EmcRdv,
	params.EmcRefresh:         hw.EmcRefresh,
	params.EmcBurstRefreshNum: hw.EmcBurstRefreshNum,
	params.EmcPdex2Wr:         hw.EmcPdex2Wr,
	params.EmcPdex2Rd:         hw.EmcPdex2Rd,
	params.EmcTxsr:            hw.EmcTxsr,
	params.EmcTcke:            hw.EmcTcke,
	params.EmcTfaw:            hw.EmcTfaw,
	params.EmcTrpab:           hw.EmcTrpab,
	params.EmcTclkStable:      hw.EmcTclkStable,
	params.EmcTclkStop:        hw.EmcTclkStop,
	params.EmcTrefBw:          hw.EmcTrefBw,
	params.EmcFbioCfg5:        hw.EmcFbioCfg5,
	params.EmcCfg:             hw.EmcCfg,
	params.EmcDbg:             hw.EmcDbg,

	params.McEmemAdrCfg:            hw.McEmemAdrCfg,
	params.McEmemCfg:               hw.McEmemCfg,
	params.McEmemArbCfg:            hw.McEmemArbCfg,
	params.McEmemArbOutstandingReq: hw.McEmemArbOutstandingReq,
	params.McEmemArbTimingRcd:      hw.McEmemArbTimingRcd,
	params.McEmemArbTimingRp:       hw.McEmemArbTimingRp,
	params.McEmemArbTimingRc:       hw.McEmemArbTimingRc,
	params.McEmemArbTimingRas:      hw.McEmemArbTimingRas,
	params.McEmemArbTimingFaw:      hw.McEmemArbTimingFaw,
	params.McEmemArbTimingRrd:      hw.McEmemArbTimingRrd,
	params.McEmemArbTimingR2w:      hw.McEmemArbTimingR2w,
	params.McEmemArbTimingW2r:      hw.McEmemArbTimingW2r,
	params.McEmemArbMisc0:          hw.McEmemArbMisc0,

	params.EmcXm2CompPadCtrl:     hw.EmcXm2CompPadCtrl,
	params.EmcPmacroPadCfgCtrl:   hw.EmcPmacroPadCfgCtrl,
	params.EmcPmacroDataPadTxCtl: hw.EmcPmacroDataPadTxCtl,
	params.EmcAutoCalConfig:      hw.EmcAutoCalConfig,
	params.EmcAutoCalConfig2:     hw.EmcAutoCalConfig2,
	params.EmcAutoCalConfig3:     hw.EmcAutoCalConfig3,
	params.EmcAutoCalVrefSel0:    hw.EmcAutoCalVrefSel0,
	params.EmcAutoCalInterval:    hw.EmcAutoCalInterval,

	params.EmcZcalInterval: hw.EmcZcalInterval,
	params.EmcZcalWaitCnt:  hw.EmcZcalWaitCnt,

	params.EmcDynSelfRefControl: hw.EmcDynSelfRefControl,
	params.EmcTrainingCtrl:      hw.EmcTrainingCtrl,
}

// RegisterOf returns the register a param is written to, if the param maps
// onto a single register.
func RegisterOf(p params.Param) (uint32, bool) {
	addr, ok := paramRegs[p]
	return addr, ok
}

// Step is one stage of the table apply phase.
type Step struct {
	Name string
	Run  func(s *Sequencer) error
}

// Program is the ordered list of table apply steps.
type Program []Step

// Names returns the step names in order.
func (p Program) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}

	return names
}

// Index returns the position of a step, or -1.
func (p Program) Index(name string) int {
	for i, s := range p {
		if s.Name == name {
			return i
		}
	}

	return -1
}

// Swap returns a copy of the program with two steps exchanged.
func (p Program) Swap(a, b string) Program {
	i, j := p.Index(a), p.Index(b)
	if i < 0 || j < 0 {
		panic(fmt.Sprintf("cannot swap %q and %q", a, b))
	}

	q := append(Program(nil), p...)
	q[i], q[j] = q[j], q[i]

	return q
}

// Names of the default steps.
const (
	StepPLLM          = "pllm"
	StepClockSource   = "clock_source"
	StepTimings       = "timings"
	StepEmcLatch      = "emc_timing_latch"
	StepMcArbitration = "mc_arbitration"
	StepMcLatch       = "mc_timing_latch"
	StepDrive         = "drive_strength"
	StepPins          = "pins"
	StepModeRegisters = "mode_registers"
	StepZQ            = "zq_calibration"
	StepRefresh       = "refresh"
)

// DefaultProgram returns the table apply order. Clocks come first, then the
// timings and their latches, then the pads, and the DRAM itself last.
func DefaultProgram() Program {
	return Program{
		{StepPLLM, (*Sequencer).applyPLLM},
		{StepClockSource, (*Sequencer).applyClockSource},
		{StepTimings, (*Sequencer).applyTimings},
		{StepEmcLatch, (*Sequencer).latchEmcTimings},
		{StepMcArbitration, (*Sequencer).applyMcArbitration},
		{StepMcLatch, (*Sequencer).latchMcTimings},
		{StepDrive, (*Sequencer).applyDriveStrength},
		{StepPins, (*Sequencer).applyPins},
		{StepModeRegisters, (*Sequencer).applyModeRegisters},
		{StepZQ, (*Sequencer).applyZQ},
		{StepRefresh, (*Sequencer).enableRefresh},
	}
}

var timingParams = []params.Param{
	params.EmcRc, params.EmcRfc, params.EmcRas, params.EmcRp,
	params.EmcR2w, params.EmcW2r, params.EmcR2p, params.EmcW2p,
	params.EmcRdRcd, params.EmcWrRcd, params.EmcRrd, params.EmcRext,
	params.EmcWdv, params.EmcQuse, params.EmcRdv, params.EmcRefresh,
	params.EmcBurstRefreshNum, params.EmcPdex2Wr, params.EmcPdex2Rd,
	params.EmcTxsr, params.EmcTcke, params.EmcTfaw, params.EmcTrpab,
	params.EmcTclkStable, params.EmcTclkStop, params.EmcTrefBw,
	params.EmcFbioCfg5, params.EmcCfg, params.EmcDbg,
}

var mcParams = []params.Param{
	params.McEmemAdrCfg, params.McEmemCfg, params.McEmemArbCfg,
	params.McEmemArbOutstandingReq, params.McEmemArbTimingRcd,
	params.McEmemArbTimingRp, params.McEmemArbTimingRc,
	params.McEmemArbTimingRas, params.McEmemArbTimingFaw,
	params.McEmemArbTimingRrd, params.McEmemArbTimingR2w,
	params.McEmemArbTimingW2r, params.McEmemArbMisc0,
}

// The auto calibration config goes last so that everything it samples is
// in place.
var driveParams = []params.Param{
	params.EmcXm2CompPadCtrl, params.EmcPmacroPadCfgCtrl,
	params.EmcPmacroDataPadTxCtl, params.EmcAutoCalConfig2,
	params.EmcAutoCalConfig3, params.EmcAutoCalVrefSel0,
	params.EmcAutoCalInterval, params.EmcAutoCalConfig,
}

var modeRegisterParams = []params.Param{
	params.EmcMrw1, params.EmcMrw2, params.EmcMrw3, params.EmcMrw11,
	params.EmcMrw12, params.EmcMrw13, params.EmcMrw14, params.EmcMrw22,
}

func (s *Sequencer) applyPLLM() error {
	s.writeParam(params.PllmSetupControl)
	s.writeParam(params.PllmKcpKvco)

	base := s.value(params.PllmInputDivider)<<hw.PllmDivMShift |
		s.value(params.PllmFeedbackDivider)<<hw.PllmDivNShift |
		s.value(params.PllmPostDivider)<<hw.PllmDivPShift
	s.write(hw.ClkRstPllmBase, base|hw.PllmEnable)

	s.wait(params.PllmStableWait)

	return s.poll(hw.ClkRstPllmBase, hw.PllmLock, hw.PllmLock,
		ErrPLLLockTimeout)
}

func (s *Sequencer) applyClockSource() error {
	s.writeParam(params.EmcClockSource)
	s.writeParam(params.EmcClockSourceDll)

	return nil
}

func (s *Sequencer) applyTimings() error {
	s.writeParams(timingParams)
	return nil
}

func (s *Sequencer) latchEmcTimings() error {
	s.write(hw.EmcTimingControl, hw.EmcTimingUpdate)
	s.wait(params.EmcTimingControlWait)

	return nil
}

func (s *Sequencer) applyMcArbitration() error {
	s.writeParams(mcParams)
	return nil
}

func (s *Sequencer) latchMcTimings() error {
	s.write(hw.McTimingControl, hw.McTimingUpdate)
	return nil
}

func (s *Sequencer) applyDriveStrength() error {
	s.writeParams(driveParams)
	s.wait(params.EmcAutoCalWait)

	return nil
}

// The DRAM sees RESET_n low, then high, then CKE high, each held for the
// time the record asks for. On a warm boot the DRAM kept its content in self
// refresh, so reset stays released and only self refresh is left.
func (s *Sequencer) applyPins() error {
	if s.warm {
		return s.exitSelfRefresh()
	}

	pins := s.value(params.EmcPinGpioEn)<<hw.EmcPinGpioEnShift |
		s.value(params.EmcPinGpio)<<hw.EmcPinGpioShift

	s.write(hw.EmcPin, pins)
	s.wait(params.EmcPinResetWait)

	pins |= hw.EmcPinReset
	s.write(hw.EmcPin, pins)
	s.wait(params.EmcPinProgramWait)

	pins |= hw.EmcPinCke
	s.write(hw.EmcPin, pins)
	s.wait(params.EmcPinExtraWait)

	return nil
}

func (s *Sequencer) exitSelfRefresh() error {
	pins := s.value(params.EmcPinGpioEn)<<hw.EmcPinGpioEnShift |
		s.value(params.EmcPinGpio)<<hw.EmcPinGpioShift |
		hw.EmcPinReset | hw.EmcPinCke

	s.write(hw.EmcPin, pins)
	s.wait(params.EmcPinExtraWait)
	hw.ClearBits(s.bus, hw.EmcSelfRef, hw.EmcSelfRefEnable)

	return nil
}

// Mode registers survive self refresh and are only written on a cold boot.
func (s *Sequencer) applyModeRegisters() error {
	if s.warm {
		return nil
	}

	for _, p := range modeRegisterParams {
		s.write(hw.EmcMrw, s.value(p))
		s.wait(params.EmcMrwWait)
	}

	return nil
}

func (s *Sequencer) applyZQ() error {
	s.writeParam(params.EmcZcalInterval)
	s.writeParam(params.EmcZcalWaitCnt)

	if s.warm {
		s.write(hw.EmcZqCal, s.value(params.EmcZqCalLpddr4WarmBoot))
		s.wait(params.EmcZcalInitWait)
	} else {
		s.write(hw.EmcZqCal, s.value(params.EmcZcalInitDev0))
		s.wait(params.EmcZcalInitWait)
		s.write(hw.EmcZqCal, s.value(params.EmcZcalInitDev1))
		s.wait(params.EmcZcalInitWait)
	}

	s.write(hw.EmcZqCal, hw.EmcZqCalLatch)

	return nil
}

func (s *Sequencer) enableRefresh() error {
	s.writeParam(params.EmcDynSelfRefControl)
	s.write(hw.EmcRefCtrl, hw.EmcRefCtrlEnable)

	return nil
}
