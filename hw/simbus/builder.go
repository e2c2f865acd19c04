package simbus

import (
	"github.com/sarchlab/sdraminit/sim/naming"
	"github.com/sarchlab/sdraminit/sim/timing"
)

// Never makes a status bit stay busy forever.
const Never = -1

// Builder can build simulated register files.
type Builder struct {
	pllLockReads  int
	autoCalReads  int
	trainingReads int
	mrrReads      int
	trainingFails bool
	fuseOdm4      uint32
	modeRegs      map[uint8]uint8
	clock         timing.Clock
}

// MakeBuilder creates a builder with the default settings: status bits turn
// ready after a few polls and the devices report a 4GB Samsung part.
func MakeBuilder() Builder {
	return Builder{
		pllLockReads:  3,
		autoCalReads:  2,
		trainingReads: 5,
		mrrReads:      1,
		modeRegs: map[uint8]uint8{
			5: 0x01,
			6: 0x00,
			7: 0x00,
			8: 0x10,
		},
	}
}

// WithPLLLockReads sets how many reads of PLLM_BASE return the unlocked
// state after PLLM is programmed.
func (b Builder) WithPLLLockReads(n int) Builder {
	b.pllLockReads = n
	return b
}

// WithAutoCalReads sets how many status reads the auto calibration stays
// active for.
func (b Builder) WithAutoCalReads(n int) Builder {
	b.autoCalReads = n
	return b
}

// WithTrainingReads sets how many status reads of each channel it takes the
// training to finish.
func (b Builder) WithTrainingReads(n int) Builder {
	b.trainingReads = n
	return b
}

// WithTrainingFailure makes the training report an error instead of
// finishing.
func (b Builder) WithTrainingFailure() Builder {
	b.trainingFails = true
	return b
}

// WithMRRReads sets how many status reads a mode register read takes.
func (b Builder) WithMRRReads(n int) Builder {
	b.mrrReads = n
	return b
}

// WithFuseOdm4 sets the value of the fuse that holds the DRAM id.
func (b Builder) WithFuseOdm4(v uint32) Builder {
	b.fuseOdm4 = v
	return b
}

// WithModeRegister sets the value that every device reports for mode
// register mr.
func (b Builder) WithModeRegister(mr, v uint8) Builder {
	regs := make(map[uint8]uint8, len(b.modeRegs)+1)
	for k, old := range b.modeRegs {
		regs[k] = old
	}
	regs[mr] = v

	b.modeRegs = regs

	return b
}

// WithDevice sets the manufacturer id and the density that the devices
// report.
func (b Builder) WithDevice(vendor, density uint8) Builder {
	return b.WithModeRegister(5, vendor).WithModeRegister(8, density)
}

// WithClock makes the microsecond counter follow clock. Without a clock the
// counter moves by one on every read.
func (b Builder) WithClock(clock timing.Clock) Builder {
	b.clock = clock
	return b
}

// Build creates a register file with all registers at zero, except the
// fuses.
func (b Builder) Build(name string) *Bus {
	naming.NameMustBeValid(name)

	bus := &Bus{
		name:          name,
		pllLockReads:  b.pllLockReads,
		autoCalReads:  b.autoCalReads,
		trainingReads: b.trainingReads,
		mrrReads:      b.mrrReads,
		trainingFails: b.trainingFails,
		fuseOdm4:      b.fuseOdm4,
		clock:         b.clock,
	}

	for mr, v := range b.modeRegs {
		for chip := 0; chip < 2; chip++ {
			for rank := 0; rank < 2; rank++ {
				for ch := 0; ch < 2; ch++ {
					bus.SetModeRegister(DeviceAddr{chip, rank, ch}, mr, v)
				}
			}
		}
	}

	bus.PowerOnReset()

	return bus
}
