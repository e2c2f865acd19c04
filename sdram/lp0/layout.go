package lp0

import (
	"fmt"

	"github.com/sarchlab/sdraminit/hw"
)

// field moves bits srcHigh..srcLow of a register into a scratch word,
// starting at bit dstLow.
type field struct {
	reg     uint32
	srcLow  uint
	srcHigh uint
	scratch int
	dstLow  uint
}

func (f field) width() uint {
	return f.srcHigh - f.srcLow + 1
}

func (f field) srcMask() uint32 {
	return mask(f.width()) << f.srcLow
}

func (f field) dstMask() uint32 {
	return mask(f.width()) << f.dstLow
}

func mask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}

	return 1<<width - 1
}

// pack copies the field out of a register value into a scratch word.
func (f field) pack(word, reg uint32) uint32 {
	bits := (reg >> f.srcLow) & mask(f.width())
	return word&^f.dstMask() | bits<<f.dstLow
}

// unpack copies the field out of a scratch word into a register value.
func (f field) unpack(reg, word uint32) uint32 {
	bits := (word >> f.dstLow) & mask(f.width())
	return reg&^f.srcMask() | bits<<f.srcLow
}

func full(reg uint32, scratch int) field {
	return field{reg, 0, 31, scratch, 0}
}

var (
	trimmer0 = hw.EmcChannel(0, hw.EmcPmacroIbDdllLongDqsRank0Off)
	trimmer1 = hw.EmcChannel(1, hw.EmcPmacroIbDdllLongDqsRank0Off)
)

// Registers kept over sleep. Everything the table apply phase writes from
// the record, plus what training found. The order of the list is the order
// Save reads the registers in.
var layout = []field{
	{hw.ClkRstPllmBase, 0, 7, 0, 0},
	{hw.ClkRstPllmBase, 8, 15, 0, 8},
	{hw.ClkRstPllmBase, 20, 24, 0, 16},
	{hw.ClkRstPllmMisc2, 0, 7, 0, 21},
	{hw.ClkRstPllmMisc1, 0, 1, 0, 29},

	{hw.ClkRstClkSourceEmc, 0, 15, 1, 0},
	{hw.ClkRstClkSourceEmcD, 0, 15, 1, 16},

	{hw.EmcRc, 0, 7, 2, 0},
	{hw.EmcRfc, 0, 9, 2, 8},
	{hw.EmcRas, 0, 6, 2, 18},
	{hw.EmcRp, 0, 6, 2, 25},

	{hw.EmcR2w, 0, 6, 3, 0},
	{hw.EmcW2r, 0, 6, 3, 7},
	{hw.EmcR2p, 0, 5, 3, 14},
	{hw.EmcW2p, 0, 6, 3, 20},
	{hw.EmcRdRcd, 0, 4, 3, 27},

	{hw.EmcWrRcd, 0, 4, 4, 0},
	{hw.EmcRrd, 0, 4, 4, 5},
	{hw.EmcRext, 0, 4, 4, 10},
	{hw.EmcWdv, 0, 5, 4, 15},
	{hw.EmcQuse, 0, 6, 4, 21},
	{hw.EmcTcke, 0, 3, 4, 28},

	{hw.EmcRdv, 0, 6, 5, 0},
	{hw.EmcRefresh, 0, 15, 5, 7},
	{hw.EmcTxsr, 0, 8, 5, 23},

	{hw.EmcBurstRefreshNum, 0, 3, 6, 0},
	{hw.EmcPdex2Wr, 0, 5, 6, 4},
	{hw.EmcPdex2Rd, 0, 5, 6, 10},
	{hw.EmcTfaw, 0, 6, 6, 16},
	{hw.EmcTrpab, 0, 6, 6, 23},

	{hw.EmcTclkStable, 0, 4, 7, 0},
	{hw.EmcTclkStop, 0, 4, 7, 5},
	{hw.EmcTrefBw, 0, 13, 7, 10},

	full(hw.EmcFbioCfg5, 8),
	full(hw.EmcCfg, 9),
	full(hw.EmcDbg, 10),

	{hw.McEmemAdrCfg, 0, 0, 11, 0},
	{hw.McEmemCfg, 0, 13, 11, 1},
	{hw.McEmemArbTimingRcd, 0, 5, 11, 15},
	{hw.McEmemArbTimingRp, 0, 5, 11, 21},
	{hw.McEmemArbTimingRc, 0, 4, 11, 27},

	full(hw.McEmemArbCfg, 12),
	full(hw.McEmemArbOutstandingReq, 13),

	{hw.McEmemArbTimingRas, 0, 5, 14, 0},
	{hw.McEmemArbTimingFaw, 0, 5, 14, 6},
	{hw.McEmemArbTimingRrd, 0, 5, 14, 12},
	{hw.McEmemArbTimingR2w, 0, 5, 14, 18},
	{hw.McEmemArbTimingW2r, 0, 5, 14, 24},

	full(hw.McEmemArbMisc0, 15),

	{hw.EmcXm2CompPadCtrl, 0, 7, 16, 0},
	{hw.EmcPmacroPadCfgCtrl, 0, 7, 16, 8},
	{hw.EmcPmacroPadCfgCtrl, 16, 19, 16, 16},
	{hw.EmcPmacroBgBiasCtrl0, 0, 7, 16, 20},

	{hw.EmcDynSelfRefControl, 0, 15, 17, 0},
	{hw.EmcDynSelfRefControl, 31, 31, 17, 16},
	{hw.EmcPmacroVttgenCtrl0, 16, 19, 17, 17},
	{hw.EmcTrainingCtrl, 0, 3, 17, 21},

	full(hw.EmcPmacroDataPadTxCtl, 18),
	{hw.EmcAutoCalConfig, 0, 30, 19, 0},
	full(hw.EmcAutoCalConfig2, 20),
	full(hw.EmcAutoCalConfig3, 21),
	full(hw.EmcAutoCalVrefSel0, 22),
	{hw.EmcAutoCalInterval, 0, 20, 23, 0},
	{hw.EmcZcalInterval, 0, 23, 24, 0},
	{hw.EmcZcalWaitCnt, 0, 21, 25, 0},

	{trimmer0, 0, 7, 26, 0},
	{trimmer0, 16, 23, 26, 8},
	{trimmer1, 0, 7, 26, 16},
	{trimmer1, 16, 23, 26, 24},
}

// NumWords is the number of scratch words a snapshot takes.
const NumWords = 27

func init() {
	layoutMustBeValid(layout)
}

func layoutMustBeValid(fields []field) {
	used := make(map[int]uint32)
	saved := make(map[uint32]uint32)

	for i, f := range fields {
		if f.srcHigh < f.srcLow || f.srcHigh > 31 {
			panic(fmt.Sprintf("layout entry %d: bad source range", i))
		}

		if f.dstLow+f.width() > 32 {
			panic(fmt.Sprintf("layout entry %d: does not fit its word", i))
		}

		if f.scratch < 0 || f.scratch >= NumWords {
			panic(fmt.Sprintf("layout entry %d: no scratch word %d", i, f.scratch))
		}

		if used[f.scratch]&f.dstMask() != 0 {
			panic(fmt.Sprintf("layout entry %d: overlaps in word %d", i, f.scratch))
		}

		if saved[f.reg]&f.srcMask() != 0 {
			panic(fmt.Sprintf("layout entry %d: %s saved twice", i, hw.RegName(f.reg)))
		}

		used[f.scratch] |= f.dstMask()
		saved[f.reg] |= f.srcMask()
	}

	if NumWords > hw.NumScratchLP0 {
		panic("layout does not fit the scratch registers")
	}
}

// SavedMask returns the bits of a register that a snapshot keeps.
func SavedMask(reg uint32) uint32 {
	var m uint32
	for _, f := range layout {
		if f.reg == reg {
			m |= f.srcMask()
		}
	}

	return m
}

// Registers lists the registers a snapshot keeps, in layout order.
func Registers() []uint32 {
	var regs []uint32
	seen := make(map[uint32]bool)

	for _, f := range layout {
		if !seen[f.reg] {
			seen[f.reg] = true
			regs = append(regs, f.reg)
		}
	}

	return regs
}
