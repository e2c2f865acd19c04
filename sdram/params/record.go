package params

import (
	"github.com/sarchlab/sdraminit/sim/timing"
)

// Record is one complete parameter set. Records are values; nothing hands
// out a pointer to the compiled-in tables.
type Record struct {
	Name     string
	Revision Revision
	Vendor   Vendor
	Protocol Protocol
	SizeMB   uint32
	RateMbps uint32

	// Density is the value the devices report in mode register 8.
	Density uint8

	values [NumParams]uint32
}

// Get returns the value of p.
func (r Record) Get(p Param) uint32 {
	return r.values[p]
}

// With returns a copy of the record with p set to v.
func (r Record) With(p Param, v uint32) Record {
	r.values[p] = v
	return r
}

// Values returns a copy of all values, indexed by Param.
func (r Record) Values() [NumParams]uint32 {
	return r.values
}

// PllmFreq returns the PLLM output frequency the record programs.
func (r Record) PllmFreq() timing.Freq {
	m := r.values[PllmInputDivider]
	n := r.values[PllmFeedbackDivider]
	p := r.values[PllmPostDivider]

	if m == 0 {
		panic("PLLM input divider cannot be 0")
	}

	return OscFreq * timing.Freq(n) / timing.Freq(m*(p+1))
}

// EmcFreq returns the EMC clock frequency the record programs. The divider
// field of CLK_SOURCE_EMC is in 7.1 format.
func (r Record) EmcFreq() timing.Freq {
	div := r.values[EmcClockSource] & 0xFF

	return r.PllmFreq() * 2 / timing.Freq(div+2)
}

// RatedFreq returns the DRAM clock at the rated data rate of the package.
func (r Record) RatedFreq() timing.Freq {
	return timing.Freq(r.RateMbps) * timing.MHz / 2
}

// BandwidthGiBps returns the peak bandwidth when the EMC runs at freq.
func (r Record) BandwidthGiBps(freq timing.Freq) float64 {
	bits := float64(freq) * 2 *
		float64(r.Revision.BusWidth()) *
		float64(r.Revision.NumChannels())

	return bits / 8 / (1 << 30)
}

func densityForSize(sizeMB uint32) uint8 {
	switch sizeMB {
	case 4096:
		return 0x10
	case 6144:
		return 0x14
	case 8192:
		return 0x18
	default:
		panic("no density code for this size")
	}
}

func buildRecord(
	rev Revision,
	base map[Param]uint32,
	overrides map[Param]uint32,
) Record {
	r := Record{Revision: rev}

	seen := 0
	for p, v := range base {
		r.values[p] = v
		seen++
	}

	if seen != int(NumParams) {
		for p := Param(0); p < NumParams; p++ {
			if _, ok := base[p]; !ok {
				panic("base table of " + rev.String() + " misses " + p.String())
			}
		}
	}

	for p, v := range overrides {
		r.values[p] = v
	}

	return r
}
