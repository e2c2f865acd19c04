package lp0

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
)

var _ = Describe("Layout", func() {
	It("should be valid", func() {
		Expect(func() { layoutMustBeValid(layout) }).NotTo(Panic())
	})

	It("should reject overlapping fields", func() {
		bad := []field{
			{hw.EmcRc, 0, 7, 0, 0},
			{hw.EmcRfc, 0, 7, 0, 4},
		}

		Expect(func() { layoutMustBeValid(bad) }).To(Panic())
	})

	It("should reject a register field saved twice", func() {
		bad := []field{
			{hw.EmcRc, 0, 7, 0, 0},
			{hw.EmcRc, 4, 11, 1, 0},
		}

		Expect(func() { layoutMustBeValid(bad) }).To(Panic())
	})

	It("should reject a field that runs out of its word", func() {
		bad := []field{{hw.EmcRc, 0, 7, 0, 28}}

		Expect(func() { layoutMustBeValid(bad) }).To(Panic())
	})

	It("should reject a word past the snapshot", func() {
		bad := []field{{hw.EmcRc, 0, 7, NumWords, 0}}

		Expect(func() { layoutMustBeValid(bad) }).To(Panic())
	})

	It("should move bits both ways", func() {
		f := field{hw.EmcRfc, 4, 9, 3, 20}

		word := f.pack(0xFFFFFFFF, 0x3A0)
		Expect(word).To(Equal(uint32(0xFFAFFFFF)))
		Expect(f.unpack(0, word)).To(Equal(uint32(0x3A0)))
	})

	It("should keep the trained trimmers", func() {
		for ch := 0; ch < params.RevisionA.NumChannels(); ch++ {
			reg := hw.EmcChannel(ch, hw.EmcPmacroIbDdllLongDqsRank0Off)
			Expect(SavedMask(reg)).To(Equal(uint32(0x00FF00FF)))
		}
	})

	It("should not keep the PLLM lock bit", func() {
		Expect(SavedMask(hw.ClkRstPllmBase) & hw.PllmLock).To(BeZero())
	})

	It("should hold every value of every table", func() {
		for _, rev := range []params.Revision{params.RevisionA, params.RevisionB} {
			for _, e := range params.Entries(rev) {
				for p := params.Param(0); p < params.NumParams; p++ {
					reg, ok := emc.RegisterOf(p)
					if !ok || SavedMask(reg) == 0 {
						continue
					}

					v := e.Record.Get(p)
					Expect(v&^SavedMask(reg)).To(BeZero(),
						"%s %s %s = %#x", rev, e.Resolved, p, v)
				}
			}
		}
	})
})
