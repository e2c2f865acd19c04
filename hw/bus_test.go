package hw

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mapBus map[uint32]uint32

func (b mapBus) Read32(addr uint32) uint32 {
	return b[addr]
}

func (b mapBus) Write32(addr, value uint32) {
	b[addr] = value
}

var _ = Describe("TracedBus", func() {
	var (
		inner    mapBus
		bus      *TracedBus
		recorder *AccessRecorder
	)

	BeforeEach(func() {
		inner = mapBus{}
		bus = NewTracedBus("Bus", inner, false)
		recorder = NewAccessRecorder()
		bus.AcceptHook(recorder)
	})

	It("should forward and record writes", func() {
		bus.Write32(EmcRc, 0x12)
		bus.Write32(EmcTimingControl, EmcTimingUpdate)

		Expect(inner[EmcRc]).To(Equal(uint32(0x12)))
		Expect(recorder.Writes()).To(HaveLen(2))
		Expect(recorder.IndexOf(EmcTimingControl)).To(Equal(1))
		Expect(recorder.IndexOf(EmcRfc)).To(Equal(-1))
	})

	It("should not report reads unless asked", func() {
		inner[EmcEmcStatus] = 5

		Expect(bus.Read32(EmcEmcStatus)).To(Equal(uint32(5)))
		Expect(recorder.Writes()).To(BeEmpty())
	})

	It("should log reads when tracing reads", func() {
		buf := new(bytes.Buffer)
		bus = NewTracedBus("Bus", inner, true)
		bus.AcceptHook(NewAccessLogger(log.New(buf, "", 0)))
		inner[EmcEmcStatus] = 5

		bus.Read32(EmcEmcStatus)
		bus.Write32(EmcRc, 1)

		Expect(buf.String()).To(ContainSubstring("R 7001b2b4 EMC_EMC_STATUS"))
		Expect(buf.String()).To(ContainSubstring("W 7001b02c EMC_RC"))
	})

	It("should set and clear bits", func() {
		inner[EmcPin] = 0x100

		SetBits(bus, EmcPin, EmcPinCke)
		ClearBits(bus, EmcPin, EmcPinReset)

		Expect(inner[EmcPin]).To(Equal(EmcPinCke))
		Expect(recorder.LastIndexOf(EmcPin)).To(Equal(1))
	})
})

var _ = Describe("RegName", func() {
	It("should name known registers", func() {
		Expect(RegName(EmcRc)).To(Equal("EMC_RC"))
		Expect(RegName(EmcChannel(1, EmcMrrOff))).To(Equal("EMC1_EMC_MRR"))
		Expect(RegName(PmcScratch(3))).To(Equal("APBDEV_PMC_SCRATCH_LP0_3"))
		Expect(RegName(0x1234)).To(Equal("0x00001234"))
	})

	It("should panic on bad channel or scratch index", func() {
		Expect(func() { EmcChannel(2, EmcMrrOff) }).To(Panic())
		Expect(func() { PmcScratch(NumScratchLP0) }).To(Panic())
	})
})
