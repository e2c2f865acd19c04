// Package simbus provides a simulated register file of the memory subsystem
// so that the bring-up sequence can run off target.
package simbus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// HookPosViolation is triggered when the register file sees an access that
// real hardware would not tolerate. The item is a Violation.
var HookPosViolation = &hooking.HookPos{Name: "HookPosViolation"}

// Violation is an access made at a time the hardware was not ready for it.
type Violation struct {
	Seq    int
	Addr   uint32
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("#%d %s: %s", v.Seq, hw.RegName(v.Addr), v.Reason)
}

// DeviceAddr selects one DRAM device by chip select, rank and channel.
type DeviceAddr struct {
	Chip, Rank, Channel int
}

type modeRegKey struct {
	dev DeviceAddr
	mr  uint8
}

// Registers shadowed until EMC_TIMING_CONTROL is written.
var emcShadowed = map[uint32]bool{
	hw.EmcRc: true, hw.EmcRfc: true, hw.EmcRas: true, hw.EmcRp: true,
	hw.EmcR2w: true, hw.EmcW2r: true, hw.EmcR2p: true, hw.EmcW2p: true,
	hw.EmcRdRcd: true, hw.EmcWrRcd: true, hw.EmcRrd: true, hw.EmcRext: true,
	hw.EmcWdv: true, hw.EmcQuse: true, hw.EmcRdv: true, hw.EmcRefresh: true,
	hw.EmcBurstRefreshNum: true, hw.EmcPdex2Wr: true, hw.EmcPdex2Rd: true,
	hw.EmcTxsr: true, hw.EmcTcke: true, hw.EmcTfaw: true, hw.EmcTrpab: true,
	hw.EmcTclkStable: true, hw.EmcTclkStop: true, hw.EmcTrefBw: true,
}

// Registers shadowed until MC_TIMING_CONTROL is written.
var mcShadowed = map[uint32]bool{
	hw.McEmemArbCfg: true, hw.McEmemArbOutstandingReq: true,
	hw.McEmemArbTimingRcd: true, hw.McEmemArbTimingRp: true,
	hw.McEmemArbTimingRc: true, hw.McEmemArbTimingRas: true,
	hw.McEmemArbTimingFaw: true, hw.McEmemArbTimingRrd: true,
	hw.McEmemArbTimingR2w: true, hw.McEmemArbTimingW2r: true,
	hw.McEmemArbMisc0: true,
}

// Bus is a simulated register file. It implements hw.Bus.
type Bus struct {
	hooking.HookableBase

	name string

	pllLockReads  int
	autoCalReads  int
	trainingReads int
	mrrReads      int
	trainingFails bool
	fuseOdm4      uint32
	clock         timing.Clock
	modeRegs      map[modeRegKey]uint8

	regs    map[uint32]uint32
	scratch [hw.NumScratchLP0]uint32
	seq     int
	counter uint32

	pllLeft      int
	autoCalLeft  int
	trainingLeft [2]int
	mrrLeft      int
	mrrPending   bool

	emcClockOn  bool
	pllLocked   bool
	cke         bool
	zqStarted   bool
	zqLatched   bool
	trainingBad bool

	pendingEmc map[uint32]bool
	pendingMc  map[uint32]bool
	violations []Violation
}

// Name returns the name of the register file.
func (b *Bus) Name() string {
	return b.name
}

// PowerOnReset brings every register back to its reset value. The PMC
// scratch registers and the fuses keep their content.
func (b *Bus) PowerOnReset() {
	b.regs = make(map[uint32]uint32)
	b.pendingEmc = make(map[uint32]bool)
	b.pendingMc = make(map[uint32]bool)
	b.pllLeft = 0
	b.autoCalLeft = 0
	b.trainingLeft = [2]int{}
	b.mrrLeft = 0
	b.mrrPending = false
	b.emcClockOn = false
	b.pllLocked = false
	b.cke = false
	b.zqStarted = false
	b.zqLatched = false
	b.trainingBad = false
}

// SetModeRegister sets the value that one device reports for mode register
// mr.
func (b *Bus) SetModeRegister(dev DeviceAddr, mr, v uint8) {
	if b.modeRegs == nil {
		b.modeRegs = make(map[modeRegKey]uint8)
	}

	b.modeRegs[modeRegKey{dev, mr}] = v
}

// Violations returns every violation seen so far.
func (b *Bus) Violations() []Violation {
	return b.violations
}

// Peek returns the content of a register without side effects.
func (b *Bus) Peek(addr uint32) uint32 {
	if n, ok := scratchIndex(addr); ok {
		return b.scratch[n]
	}

	if addr == hw.FuseReservedOdm4 {
		return b.fuseOdm4
	}

	return b.regs[addr]
}

// Poke sets the content of a register without side effects.
func (b *Bus) Poke(addr, value uint32) {
	if n, ok := scratchIndex(addr); ok {
		b.scratch[n] = value
		return
	}

	b.regs[addr] = value
}

// PendingTimingWrites lists the shadowed registers written since the last
// latch of their block.
func (b *Bus) PendingTimingWrites() []string {
	var names []string

	for addr := range b.pendingEmc {
		names = append(names, hw.RegName(addr))
	}

	for addr := range b.pendingMc {
		names = append(names, hw.RegName(addr))
	}

	sort.Strings(names)

	return names
}

// TrainedTrimmer is the trimmer value training finds on a channel.
func TrainedTrimmer(ch int) uint32 {
	return 0x00200020 + uint32(ch)
}

func scratchIndex(addr uint32) (int, bool) {
	if addr < hw.PmcScratchLP0 || addr >= hw.PmcScratchLP0+4*hw.NumScratchLP0 {
		return 0, false
	}

	return int(addr-hw.PmcScratchLP0) / 4, true
}

func (b *Bus) violate(addr uint32, format string, args ...any) {
	v := Violation{
		Seq:    b.seq,
		Addr:   addr,
		Reason: fmt.Sprintf(format, args...),
	}

	b.violations = append(b.violations, v)

	if b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosViolation,
			Item:   v,
		})
	}
}

func countdown(left *int) bool {
	if *left == Never {
		return false
	}

	if *left > 0 {
		*left--
		return false
	}

	return true
}

// Read32 reads a register.
func (b *Bus) Read32(addr uint32) uint32 {
	if n, ok := scratchIndex(addr); ok {
		return b.scratch[n]
	}

	switch addr {
	case hw.FuseReservedOdm4:
		return b.fuseOdm4
	case hw.TimerUsCounter:
		return b.readCounter()
	case hw.ClkRstPllmBase:
		return b.readPllm()
	case hw.EmcAutoCalStatus:
		return b.readAutoCalStatus()
	case hw.EmcEmcStatus:
		return b.readEmcStatus()
	case hw.EmcChannel(0, hw.EmcTrainingStatusOff):
		return b.readTrainingStatus(0)
	case hw.EmcChannel(1, hw.EmcTrainingStatusOff):
		return b.readTrainingStatus(1)
	}

	return b.regs[addr]
}

func (b *Bus) readCounter() uint32 {
	if b.clock != nil {
		return uint32(math.Round(float64(b.clock.Now()) * 1e6))
	}

	b.counter++

	return b.counter
}

func (b *Bus) readPllm() uint32 {
	v := b.regs[hw.ClkRstPllmBase]
	if v&hw.PllmEnable == 0 {
		return v &^ hw.PllmLock
	}

	if countdown(&b.pllLeft) {
		b.pllLocked = true
		return v | hw.PllmLock
	}

	return v &^ hw.PllmLock
}

func (b *Bus) readAutoCalStatus() uint32 {
	v := b.regs[hw.EmcAutoCalStatus]
	if v&hw.EmcAutoCalActive == 0 {
		return v
	}

	if countdown(&b.autoCalLeft) {
		v &^= hw.EmcAutoCalActive
		b.regs[hw.EmcAutoCalStatus] = v
	}

	return v
}

func (b *Bus) readEmcStatus() uint32 {
	v := b.regs[hw.EmcEmcStatus]
	if !b.mrrPending {
		return v
	}

	if countdown(&b.mrrLeft) {
		b.mrrPending = false
		v |= hw.EmcStatusMrrDivld
		b.regs[hw.EmcEmcStatus] = v
	}

	return v
}

func (b *Bus) readTrainingStatus(ch int) uint32 {
	addr := hw.EmcChannel(ch, hw.EmcTrainingStatusOff)
	v := b.regs[addr]

	started := b.regs[hw.EmcTrainingCmd]&hw.EmcTrainingStart != 0
	finished := v&(hw.EmcTrainingDone|hw.EmcTrainingError) != 0
	if finished || !started || b.trainingBad {
		return v
	}

	if countdown(&b.trainingLeft[ch]) {
		if b.trainingFails {
			v |= hw.EmcTrainingError
		} else {
			v |= hw.EmcTrainingDone
			b.regs[hw.EmcChannel(ch, hw.EmcPmacroIbDdllLongDqsRank0Off)] =
				TrainedTrimmer(ch)
		}
		b.regs[addr] = v
	}

	return v
}

// Write32 writes a register.
func (b *Bus) Write32(addr, value uint32) {
	b.seq++

	if n, ok := scratchIndex(addr); ok {
		b.scratch[n] = value
		return
	}

	if addr == hw.FuseReservedOdm4 || addr == hw.TimerUsCounter {
		b.violate(addr, "register is read only")
		return
	}

	b.checkClockGate(addr)

	switch addr {
	case hw.ClkRstPllmBase:
		b.writePllm()
	case hw.ClkRstClkEnbHSet:
		b.regs[addr] |= value
		if value&hw.ClkHEmc != 0 {
			b.emcClockOn = true
		}
		return
	case hw.ClkRstClkSourceEmc:
		if !b.pllLocked {
			b.violate(addr, "EMC clock source switched before PLLM locked")
		}
	case hw.EmcTimingControl:
		if value&hw.EmcTimingUpdate != 0 {
			b.pendingEmc = make(map[uint32]bool)
		}
		return
	case hw.McTimingControl:
		if value&hw.McTimingUpdate != 0 {
			b.pendingMc = make(map[uint32]bool)
		}
		return
	case hw.EmcAutoCalConfig:
		b.writeAutoCalConfig(value)
	case hw.EmcPin:
		b.cke = value&hw.EmcPinCke != 0
	case hw.EmcMrw:
		if !b.cke {
			b.violate(addr, "mode register written while CKE is low")
		}
	case hw.EmcMrr:
		b.writeMrr(value)
	case hw.EmcZqCal:
		b.writeZqCal(addr, value)
	case hw.EmcRefCtrl:
		if value&hw.EmcRefCtrlEnable != 0 && !b.zqLatched {
			b.violate(addr, "refresh enabled before ZQ calibration was latched")
		}
	case hw.EmcTrainingCmd:
		b.writeTrainingCmd(value)
	}

	if emcShadowed[addr] {
		b.pendingEmc[addr] = true
	}

	if mcShadowed[addr] {
		b.pendingMc[addr] = true
	}

	b.regs[addr] = value
}

func (b *Bus) checkClockGate(addr uint32) {
	inEmc := addr >= hw.EmcBase && addr < hw.EmcBase+0x1000
	inChannel := addr >= hw.Emc0Base && addr < hw.Emc1Base+0x1000

	if (inEmc || inChannel) && !b.emcClockOn {
		b.violate(addr, "EMC register written while the EMC clock is gated")
	}
}

func (b *Bus) writePllm() {
	b.pllLocked = false
	b.pllLeft = b.pllLockReads
}

func (b *Bus) writeAutoCalConfig(value uint32) {
	if value&hw.EmcAutoCalStart == 0 {
		return
	}

	b.autoCalLeft = b.autoCalReads
	b.regs[hw.EmcAutoCalStatus] |= hw.EmcAutoCalActive
}

func (b *Bus) writeZqCal(addr, value uint32) {
	if value&hw.EmcZqCalStart != 0 {
		b.zqStarted = true
	}

	if value&hw.EmcZqCalLatch != 0 {
		if !b.zqStarted {
			b.violate(addr, "ZQ latch without a ZQ start")
			return
		}

		b.zqLatched = true
	}
}

func (b *Bus) writeTrainingCmd(value uint32) {
	if value&hw.EmcTrainingStart == 0 {
		return
	}

	if len(b.pendingEmc) > 0 || len(b.pendingMc) > 0 {
		b.trainingBad = true
		b.violate(hw.EmcTrainingCmd,
			"training started with unlatched timing writes: %s",
			strings.Join(b.PendingTimingWrites(), ", "))
	}

	for ch := 0; ch < 2; ch++ {
		b.trainingLeft[ch] = b.trainingReads
		b.regs[hw.EmcChannel(ch, hw.EmcTrainingStatusOff)] = 0
	}
}

func (b *Bus) writeMrr(value uint32) {
	if !b.cke {
		b.violate(hw.EmcMrr, "mode register read while CKE is low")
	}

	mr := uint8(value >> hw.EmcMrrAddrShift)
	chip := 0
	if (value>>hw.EmcMrrDevSelShift)&0x3 == 1 {
		chip = 1
	}

	for rank := 0; rank < 2; rank++ {
		ch0 := uint32(b.modeRegs[modeRegKey{DeviceAddr{chip, rank, 0}, mr}])
		ch1 := uint32(b.modeRegs[modeRegKey{DeviceAddr{chip, rank, 1}, mr}])

		b.regs[hw.EmcChannel(rank, hw.EmcMrrOff)] = ch0 | ch1<<8
	}

	b.regs[hw.EmcEmcStatus] &^= hw.EmcStatusMrrDivld
	b.mrrPending = true
	b.mrrLeft = b.mrrReads
}
