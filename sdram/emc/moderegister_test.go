package emc

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/timing"
)

var _ = Describe("ReadModeRegister", func() {
	var (
		mockCtrl *gomock.Controller
		bus      *MockBus
		seq      *Sequencer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		bus = NewMockBus(mockCtrl)

		rec, err := params.Lookup(params.RevisionA, params.Direct(0))
		Expect(err).NotTo(HaveOccurred())

		seq = MakeBuilder().
			WithBus(bus).
			WithClock(timing.NewSimClock("Clock")).
			WithRecord(rec).
			WithPollLimit(3).
			Build("EMC")
		seq.state = Ready
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should select each chip and collect both channels", func() {
		gomock.InOrder(
			bus.EXPECT().Write32(hw.EmcMrr, uint32(2<<30|5<<16)),
			bus.EXPECT().Read32(hw.EmcEmcStatus).Return(uint32(0)),
			bus.EXPECT().Read32(hw.EmcEmcStatus).Return(hw.EmcStatusMrrDivld),
			bus.EXPECT().Read32(hw.Emc0Base+hw.EmcMrrOff).Return(uint32(0x0201)),
			bus.EXPECT().Read32(hw.Emc1Base+hw.EmcMrrOff).Return(uint32(0x0403)),
			bus.EXPECT().Write32(hw.EmcMrr, uint32(1<<30|5<<16)),
			bus.EXPECT().Read32(hw.EmcEmcStatus).Return(hw.EmcStatusMrrDivld),
			bus.EXPECT().Read32(hw.Emc0Base+hw.EmcMrrOff).Return(uint32(0x0605)),
			bus.EXPECT().Read32(hw.Emc1Base+hw.EmcMrrOff).Return(uint32(0x0807)),
		)

		v, err := seq.ReadModeRegister(MR5ManID)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(ModeRegisterValue{
			Chip0: ChipData{Rank0Ch0: 1, Rank0Ch1: 2, Rank1Ch0: 3, Rank1Ch1: 4},
			Chip1: ChipData{Rank0Ch0: 5, Rank0Ch1: 6, Rank1Ch0: 7, Rank1Ch1: 8},
		}))
	})

	It("should time out when the data never turns valid", func() {
		bus.EXPECT().Write32(hw.EmcMrr, gomock.Any())
		bus.EXPECT().Read32(hw.EmcEmcStatus).Return(uint32(0)).Times(3)

		_, err := seq.ReadModeRegister(MR8Density)

		Expect(err).To(MatchError(ErrMRRTimeout))
		Expect(err.Error()).To(ContainSubstring("MR8_DENSITY"))
	})

	It("should refuse reads while suspended", func() {
		seq.state = Suspended

		_, err := seq.ReadModeRegister(MR5ManID)

		Expect(err).To(MatchError(ErrNotInitialized))
	})
})

var _ = Describe("ModeRegister", func() {
	It("should print names", func() {
		Expect(MR7RevID2.String()).To(Equal("MR7_REV_ID2"))
		Expect(ModeRegister(12).String()).To(Equal("MR12"))
	})

	It("should decode vendors", func() {
		Expect(Vendor(0xFF)).To(Equal(params.VendorMicron))
		Expect(Vendor(0x06).String()).To(Equal("Hynix"))
		Expect(Vendor(0x42).String()).To(Equal("Vendor(0x42)"))
	})
})
