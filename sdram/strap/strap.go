// Package strap reads the id of the DRAM package soldered on the board.
package strap

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
)

// PackageID identifies a DRAM package. The id spaces of the two revisions do
// not overlap.
type PackageID uint8

var packageNames = map[PackageID]string{
	0:  "LPDDR4 4GB Samsung K4F6E304HB-MGCH",
	1:  "LPDDR4 4GB Hynix H9HCNNNBPUMLHR-NLE",
	2:  "LPDDR4 4GB Micron MT53B512M32D2NP-062 WT:C",
	3:  "LPDDR4X Hoag 4GB Hynix H9HCNNNBKMMLXR-NEE",
	4:  "LPDDR4 6GB Samsung K4FHE3D4HM-MGCH",
	5:  "LPDDR4X Iowa 4GB Hynix H9HCNNNBKMMLXR-NEE",
	6:  "LPDDR4X Aula 4GB Hynix H9HCNNNBKMMLXR-NEE",
	8:  "LPDDR4X Iowa 4GB Samsung K4U6E3S4AM-MGCJ",
	9:  "LPDDR4X Iowa 8GB Samsung K4UBE3D4AM-MGCJ",
	10: "LPDDR4X Iowa 4GB Hynix H9HCNNNBKMMLHR-NME",
	11: "LPDDR4X Iowa 4GB Micron MT53E512M32D2NP-046 WT:E",
	12: "LPDDR4X Hoag 4GB Samsung K4U6E3S4AM-MGCJ",
	13: "LPDDR4X Hoag 8GB Samsung K4UBE3D4AM-MGCJ",
	14: "LPDDR4X Hoag 4GB Hynix H9HCNNNBKMMLHR-NME",
	15: "LPDDR4X Hoag 4GB Micron MT53E512M32D2NP-046 WT:E",
	17: "LPDDR4X Iowa 4GB Samsung K4U6E3S4AA-MGCL",
	18: "LPDDR4X Iowa 8GB Samsung K4UBE3D4AA-MGCL",
	19: "LPDDR4X Hoag 4GB Samsung K4U6E3S4AA-MGCL",
	20: "LPDDR4X Iowa 4GB Samsung 1z",
	21: "LPDDR4X Hoag 4GB Samsung 1z",
	22: "LPDDR4X Aula 4GB Samsung 1z",
	23: "LPDDR4X Hoag 8GB Samsung K4UBE3D4AA-MGCL",
	24: "LPDDR4X Aula 4GB Samsung K4U6E3S4AA-MGCL",
	25: "LPDDR4X Iowa 4GB Micron MT53E512M32D2NP-046 WT:F",
	26: "LPDDR4X Hoag 4GB Micron MT53E512M32D2NP-046 WT:F",
	27: "LPDDR4X Aula 4GB Micron MT53E512M32D2NP-046 WT:F",
	28: "LPDDR4X Aula 8GB Samsung K4UBE3D4AA-MGCL",
	29: "LPDDR4X 4GB Hynix 1a",
	30: "LPDDR4X 4GB Hynix 1a",
	31: "LPDDR4X 4GB Hynix 1a",
	32: "LPDDR4X 4GB Micron 1a",
	33: "LPDDR4X 4GB Micron 1a",
	34: "LPDDR4X 4GB Micron 1a",
}

func (id PackageID) String() string {
	if name, ok := packageNames[id]; ok {
		return name
	}

	return fmt.Sprintf("unknown DRAM id %d", uint8(id))
}

// Fields of FUSE_RESERVED_ODM4.
const (
	idLowShift  = 3
	idLowMask   = 0x1F
	idHighShift = 12
	idHighMask  = 0x7
)

// Identify reads the package id. The fuse is read exactly once. Every value
// is returned as is, including ids no record exists for.
func Identify(bus hw.Bus, rev params.Revision) PackageID {
	return Decode(bus.Read32(hw.FuseReservedOdm4), rev)
}

// Decode extracts the package id of rev from a FUSE_RESERVED_ODM4 value.
// T210 only wires the low five bits.
func Decode(odm4 uint32, rev params.Revision) PackageID {
	id := (odm4 >> idLowShift) & idLowMask
	if rev == params.RevisionB {
		id |= ((odm4 >> idHighShift) & idHighMask) << 5
	}

	return PackageID(id)
}

// Encode returns the fuse value that Identify decodes into id. It is the
// inverse of Identify for ids that fit the fuse fields of rev.
func Encode(id PackageID, rev params.Revision) uint32 {
	v := (uint32(id) & idLowMask) << idLowShift

	if rev == params.RevisionB {
		v |= ((uint32(id) >> 5) & idHighMask) << idHighShift
	}

	return v
}
