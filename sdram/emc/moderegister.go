package emc

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/hooking"
)

// ModeRegister is the address of a DRAM mode register.
type ModeRegister uint8

// Mode registers that identify the device.
const (
	MR5ManID   ModeRegister = 5
	MR6RevID1  ModeRegister = 6
	MR7RevID2  ModeRegister = 7
	MR8Density ModeRegister = 8
)

func (mr ModeRegister) String() string {
	switch mr {
	case MR5ManID:
		return "MR5_MAN_ID"
	case MR6RevID1:
		return "MR6_REV_ID1"
	case MR7RevID2:
		return "MR7_REV_ID2"
	case MR8Density:
		return "MR8_DENSITY"
	default:
		return fmt.Sprintf("MR%d", uint8(mr))
	}
}

// ChipData holds what the devices behind one chip select report.
type ChipData struct {
	Rank0Ch0 uint8
	Rank0Ch1 uint8
	Rank1Ch0 uint8
	Rank1Ch1 uint8
}

// Bytes returns the four values in rank, then channel order.
func (c ChipData) Bytes() [4]uint8 {
	return [4]uint8{c.Rank0Ch0, c.Rank0Ch1, c.Rank1Ch0, c.Rank1Ch1}
}

// ModeRegisterValue holds a mode register of every device.
type ModeRegisterValue struct {
	Chip0 ChipData
	Chip1 ChipData
}

// Device select values of EMC_MRR. Chip selects are active low.
var chipSelects = [2]uint32{2, 1}

// ReadModeRegister reads mr from every device.
func (s *Sequencer) ReadModeRegister(mr ModeRegister) (ModeRegisterValue, error) {
	if s.state != Ready {
		return ModeRegisterValue{}, ErrNotInitialized
	}

	return s.readModeRegister(mr)
}

func (s *Sequencer) readModeRegister(mr ModeRegister) (ModeRegisterValue, error) {
	var v ModeRegisterValue

	for chip, data := range []*ChipData{&v.Chip0, &v.Chip1} {
		s.bus.Write32(hw.EmcMrr,
			chipSelects[chip]<<hw.EmcMrrDevSelShift|
				uint32(mr)<<hw.EmcMrrAddrShift)

		err := s.poll(hw.EmcEmcStatus,
			hw.EmcStatusMrrDivld, hw.EmcStatusMrrDivld, ErrMRRTimeout)
		if err != nil {
			return ModeRegisterValue{}, fmt.Errorf("%s: %w", mr, err)
		}

		rank0 := s.bus.Read32(hw.EmcChannel(0, hw.EmcMrrOff))
		rank1 := s.bus.Read32(hw.EmcChannel(1, hw.EmcMrrOff))

		*data = ChipData{
			Rank0Ch0: uint8(rank0),
			Rank0Ch1: uint8(rank0 >> 8),
			Rank1Ch0: uint8(rank1),
			Rank1Ch1: uint8(rank1 >> 8),
		}
	}

	return v, nil
}

// HookPosVerifyMismatch is triggered when a device reports another identity
// than the record expects. The item is a Mismatch.
var HookPosVerifyMismatch = &hooking.HookPos{Name: "HookPosVerifyMismatch"}

// Mismatch is one device that did not report the expected value.
type Mismatch struct {
	Register ModeRegister
	Chip     int
	Rank     int
	Channel  int
	Want     uint8
	Got      uint8
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s of chip %d rank %d channel %d: want 0x%02x, got 0x%02x",
		m.Register, m.Chip, m.Rank, m.Channel, m.Want, m.Got)
}

// Verification is the result of checking the identity of the devices.
type Verification struct {
	Vendor     ModeRegisterValue
	Density    ModeRegisterValue
	Mismatches []Mismatch
}

// OK tells if every device reported what the record expects.
func (v Verification) OK() bool {
	return len(v.Mismatches) == 0
}

// A mismatch is only reported. Training passing is what decides if the
// memory works.
func (s *Sequencer) verify() error {
	vendor, err := s.readModeRegister(MR5ManID)
	if err != nil {
		return err
	}

	density, err := s.readModeRegister(MR8Density)
	if err != nil {
		return err
	}

	s.verification = Verification{Vendor: vendor, Density: density}
	s.compare(MR5ManID, vendor, uint8(s.record.Vendor))
	s.compare(MR8Density, density, s.record.Density)

	return nil
}

func (s *Sequencer) compare(mr ModeRegister, v ModeRegisterValue, want uint8) {
	for chip, data := range []ChipData{v.Chip0, v.Chip1} {
		for i, got := range data.Bytes() {
			if got == want {
				continue
			}

			m := Mismatch{
				Register: mr,
				Chip:     chip,
				Rank:     i / 2,
				Channel:  i % 2,
				Want:     want,
				Got:      got,
			}
			s.verification.Mismatches = append(s.verification.Mismatches, m)

			if s.NumHooks() > 0 {
				s.InvokeHook(hooking.HookCtx{
					Domain: s,
					Pos:    HookPosVerifyMismatch,
					Item:   m,
				})
			}
		}
	}
}

// Vendor decodes a manufacturer id.
func Vendor(id uint8) params.Vendor {
	return params.Vendor(id)
}
