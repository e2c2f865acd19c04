package params

// The T210B01 tables bring LPDDR4X up at 204 MHz. Only one base table is
// kept; every other package is described by the patches that turn the base
// table into its own.
func t210b01BaseValues() map[Param]uint32 {
	v := t210Base()

	v[PmcDdrPwr] = 0x00000001
	v[PmcDdrCfg] = 0x04220500
	v[PmcWeakBias] = 0x00007FFF
	v[EmcPmacroBgBiasCtrl0] = 0x00000034
	v[EmcPmacroVttgenCtrl0] = 0x00050000

	v[EmcRc] = 0x0000000D
	v[EmcRas] = 0x0000000A
	v[EmcWdv] = 0x00000003
	v[EmcQuse] = 0x00000007
	v[EmcRdv] = 0x00000010
	v[EmcFbioCfg5] = 0x9160A10D
	v[EmcCfg] = 0x73340000

	v[McEmemArbCfg] = 0x0E00000D
	v[McEmemArbTimingRc] = 0x00000007
	v[McEmemArbMisc0] = 0x07120000

	v[EmcXm2CompPadCtrl] = 0x00000041
	v[EmcPmacroPadCfgCtrl] = 0x00020004
	v[EmcAutoCalConfig] = 0x201A51D9
	v[EmcAutoCalVrefSel0] = 0xB3C5BCBC

	v[EmcMrw3] = MRW(3, 0xB1)
	v[EmcMrw12] = MRW(12, 0x32)
	v[EmcMrw14] = MRW(14, 0x32)

	return v
}

func t210b01Base() Record {
	r := buildRecord(RevisionB, t210b01BaseValues(), nil)
	r.Name = "4GB Samsung K4U6E3S4AM-MGCJ"
	r.Vendor = VendorSamsung
	r.Protocol = LPDDR4X
	r.SizeMB = 4096
	r.RateMbps = 3733
	r.Density = densityForSize(r.SizeMB)

	return r
}

// PatchInfo describes the package that a patch code produces.
type PatchInfo struct {
	Name     string
	Vendor   Vendor
	SizeMB   uint32
	RateMbps uint32
}

// NumPatchCodes is the number of patch codes of T210B01. Codes run from 1 to
// NumPatchCodes.
const NumPatchCodes = 9

var patchInfos = [NumPatchCodes + 1]PatchInfo{
	1: {"8GB Samsung K4UBE3D4AM-MGCJ", VendorSamsung, 8192, 3733},
	2: {"4GB Micron MT53E512M32D2NP-046 WT:E", VendorMicron, 4096, 4266},
	3: {"4GB Samsung K4U6E3S4AA-MGCL", VendorSamsung, 4096, 4266},
	4: {"8GB Samsung K4UBE3D4AA-MGCL", VendorSamsung, 8192, 4266},
	5: {"4GB Samsung 1z", VendorSamsung, 4096, 4266},
	6: {"4GB Micron MT53E512M32D2NP-046 WT:F", VendorMicron, 4096, 4266},
	7: {"4GB Hynix H9HCNNNBKMMLXR-NEE", VendorHynix, 4096, 4266},
	8: {"4GB Hynix 1a", VendorHynix, 4096, 4266},
	9: {"4GB Micron 1a", VendorMicron, 4096, 4266},
}

// Info returns the package description of a patch code.
func Info(code uint8) PatchInfo {
	if code == 0 || code > NumPatchCodes {
		panic("patch code out of range")
	}

	return patchInfos[code]
}

// PatchEntry overrides one param for every patch code in its code set.
type PatchEntry struct {
	Param Param
	Value uint32
	codes uint16
}

// Applies tells if the entry is part of patch code.
func (e PatchEntry) Applies(code uint8) bool {
	return e.codes&(1<<code) != 0
}

func codes(list ...uint8) uint16 {
	var mask uint16
	for _, c := range list {
		mask |= 1 << c
	}

	return mask
}

var t210b01Patches = []PatchEntry{
	// 8GB parts: second rank and longer refresh.
	{EmcRfc, 0x0000004E, codes(1, 4)},
	{EmcTxsr, 0x00000052, codes(1, 4)},
	{EmcTrefBw, 0x00000350, codes(1, 4)},
	{McEmemAdrCfg, 0x00000000, codes(1, 4)},
	{McEmemCfg, 0x00002000, codes(1, 4)},
	{McEmemArbTimingRc, 0x00000008, codes(1, 4)},

	// 4266 Mbps parts.
	{EmcQuse, 0x00000008, codes(2, 3, 4, 5, 6, 7, 8, 9)},
	{EmcRdv, 0x00000011, codes(2, 3, 4, 5, 6, 7, 8, 9)},
	{EmcWdv, 0x00000004, codes(2, 3, 4, 5, 6, 7, 8, 9)},
	{McEmemArbCfg, 0x0E00000E, codes(2, 3, 4, 5, 6, 7, 8, 9)},

	// Micron vref and output drive.
	{EmcMrw3, MRW(3, 0xB3), codes(2, 6, 9)},
	{EmcMrw12, MRW(12, 0x2E), codes(2, 6, 9)},
	{EmcMrw14, MRW(14, 0x2E), codes(2, 6, 9)},
	{EmcAutoCalVrefSel0, 0xB3C5B8B8, codes(2, 6, 9)},

	// Hynix vref and ODT.
	{EmcMrw12, MRW(12, 0x30), codes(7, 8)},
	{EmcMrw14, MRW(14, 0x30), codes(7, 8)},
	{EmcMrw22, MRW(22, 0x04), codes(7, 8)},

	// Newer dies with lower pad drive.
	{EmcPmacroDataPadTxCtl, 0x02000101, codes(5, 8, 9)},
	{EmcXm2CompPadCtrl, 0x00000031, codes(5, 8, 9)},
	{EmcDynSelfRefControl, 0x80000C8E, codes(5, 8, 9)},
	{EmcMrw13, MRW(13, 0x40), codes(5, 8, 9)},
}

// Patches returns the patch entries of T210B01.
func Patches() []PatchEntry {
	return append([]PatchEntry(nil), t210b01Patches...)
}

// ApplyPatch returns base with every entry of patch code applied, and with
// the package description of the code.
func ApplyPatch(base Record, code uint8) Record {
	info := Info(code)

	r := base
	for _, e := range t210b01Patches {
		if e.Applies(code) {
			r.values[e.Param] = e.Value
		}
	}

	r.Name = info.Name
	r.Vendor = info.Vendor
	r.SizeMB = info.SizeMB
	r.RateMbps = info.RateMbps
	r.Density = densityForSize(info.SizeMB)

	return r
}

func t210b01Records() map[Resolved]Record {
	base := t210b01Base()

	hynixBase := base
	hynixBase.Name = "4GB Hynix H9HCNNNBKMMLHR-NME"
	hynixBase.Vendor = VendorHynix

	records := map[Resolved]Record{
		Direct(8):  base,
		Direct(10): hynixBase,
		Direct(12): base,
		Direct(14): hynixBase,
	}

	for c := uint8(1); c <= NumPatchCodes; c++ {
		records[Patched(c)] = ApplyPatch(base, c)
	}

	return records
}
