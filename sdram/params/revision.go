// Package params holds the compiled-in DRAM parameter records, one per
// supported package and silicon revision, and the lookup that selects one.
package params

import (
	"fmt"

	"github.com/sarchlab/sdraminit/sim/timing"
)

// Revision identifies the silicon revision of the SoC. It is decided by the
// caller before any DRAM code runs.
type Revision int

// The two supported revisions.
const (
	// RevisionA is the first silicon (T210) with LPDDR4.
	RevisionA Revision = iota
	// RevisionB is the die shrink (T210B01) with LPDDR4X.
	RevisionB
)

func (r Revision) String() string {
	switch r {
	case RevisionA:
		return "T210"
	case RevisionB:
		return "T210B01"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

// ParseRevision accepts the names printed by String, plus "a" and "b".
func ParseRevision(s string) (Revision, error) {
	switch s {
	case "T210", "t210", "a", "A", "erista":
		return RevisionA, nil
	case "T210B01", "t210b01", "b", "B", "mariko":
		return RevisionB, nil
	}

	return 0, fmt.Errorf("unknown silicon revision %q", s)
}

// BusWidth returns the width in bits of one EMC channel.
func (r Revision) BusWidth() int {
	if r == RevisionB {
		return 64
	}

	return 32
}

// NumChannels returns the number of EMC channels.
func (r Revision) NumChannels() int {
	return 2
}

// OscFreq is the frequency of the crystal that feeds PLLM.
const OscFreq = 38.4 * timing.MHz

// Protocol defines the DRAM generation of a package.
type Protocol int

// A list of the protocols this core can bring up.
const (
	LPDDR4 Protocol = iota
	LPDDR4X
)

func (p Protocol) String() string {
	if p == LPDDR4X {
		return "LPDDR4X"
	}

	return "LPDDR4"
}

// Vendor is the manufacturer id that a device reports in mode register 5.
type Vendor uint8

// Manufacturer ids.
const (
	VendorSamsung Vendor = 0x01
	VendorHynix   Vendor = 0x06
	VendorMicron  Vendor = 0xFF
)

func (v Vendor) String() string {
	switch v {
	case VendorSamsung:
		return "Samsung"
	case VendorHynix:
		return "Hynix"
	case VendorMicron:
		return "Micron"
	default:
		return fmt.Sprintf("Vendor(0x%02x)", uint8(v))
	}
}
