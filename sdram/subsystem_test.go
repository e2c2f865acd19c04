package sdram

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/hw/simbus"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/strap"
	"github.com/sarchlab/sdraminit/sim/hooking"
	"github.com/sarchlab/sdraminit/sim/timing"
)

var _ = Describe("Subsystem", func() {
	var (
		clock  *timing.SimClock
		simBus *simbus.Bus
	)

	build := func(
		rev params.Revision,
		id strap.PackageID,
		vendor params.Vendor,
		density uint8,
	) *Subsystem {
		simBus = simbus.MakeBuilder().
			WithClock(clock).
			WithFuseOdm4(strap.Encode(id, rev)).
			WithDevice(uint8(vendor), density).
			Build("SimBus")

		return MakeBuilder().
			WithBus(simBus).
			WithClock(clock).
			WithRevision(rev).
			Build("SDRAM")
	}

	BeforeEach(func() {
		clock = timing.NewSimClock("Clock")
	})

	It("should bring up the T210 Hynix 4GB part", func() {
		s := build(params.RevisionA, 1, params.VendorHynix, 0x10)

		rec, err := s.PatchedParameters()
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Name).To(ContainSubstring("Hynix"))
		Expect(rec.SizeMB).To(Equal(uint32(4096)))

		Expect(s.Initialize()).To(Succeed())
		Expect(s.State()).To(Equal(emc.Ready))
		Expect(s.Controller().Verification().OK()).To(BeTrue())
		Expect(simBus.Violations()).To(BeEmpty())
	})

	It("should pick the 8GB Samsung patch for id 9 on T210B01", func() {
		s := build(params.RevisionB, 9, params.VendorSamsung, 0x18)

		Expect(s.Resolved()).To(Equal(params.Patched(1)))

		rec, err := s.PatchedParameters()
		Expect(err).NotTo(HaveOccurred())

		want, err := params.Lookup(params.RevisionB, params.Patched(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec).To(Equal(want))
		Expect(rec.SizeMB).To(Equal(uint32(8192)))

		Expect(s.Initialize()).To(Succeed())
		Expect(s.Controller().Verification().OK()).To(BeTrue())
	})

	It("should pick the 4GB Samsung 1z patch for id 20 on T210B01", func() {
		s := build(params.RevisionB, 20, params.VendorSamsung, 0x10)
		other := build(params.RevisionB, 9, params.VendorSamsung, 0x18)

		Expect(s.Resolved()).To(Equal(params.Patched(5)))

		rec, err := s.PatchedParameters()
		Expect(err).NotTo(HaveOccurred())
		rec8, err := other.PatchedParameters()
		Expect(err).NotTo(HaveOccurred())

		Expect(rec.Name).To(Equal("4GB Samsung 1z"))
		Expect(rec.Values()).NotTo(Equal(rec8.Values()))
	})

	It("should fail on an unmapped id without touching the controller", func() {
		s := build(params.RevisionB, 7, params.VendorSamsung, 0x10)

		Expect(s.Resolved()).To(Equal(params.Unmapped(7)))

		_, err := s.PatchedParameters()
		Expect(err).To(MatchError(params.ErrUnsupportedPackage))

		err = s.Initialize()
		Expect(err).To(MatchError(params.ErrUnsupportedPackage))
		Expect(s.State()).To(Equal(emc.Uninitialized))
		Expect(s.Controller()).To(BeNil())
		Expect(simBus.Peek(hw.ClkRstClkEnbHSet)).To(BeZero())
	})

	It("should read the straps once", func() {
		s := build(params.RevisionA, 2, params.VendorMicron, 0x10)

		Expect(s.PackageID()).To(Equal(strap.PackageID(2)))

		simBus.Poke(hw.FuseReservedOdm4, strap.Encode(0, params.RevisionA))

		Expect(s.PackageID()).To(Equal(strap.PackageID(2)))
	})

	It("should give the T210B01 record of the package", func() {
		s := build(params.RevisionB, 12, params.VendorSamsung, 0x10)

		rec, err := s.ParametersForSecondaryRevision()
		Expect(err).NotTo(HaveOccurred())

		base, err := params.BaseRecord(params.RevisionB)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec).To(Equal(base))
	})

	It("should have no T210B01 record for a T210 only package", func() {
		s := build(params.RevisionA, 1, params.VendorHynix, 0x10)

		_, err := s.ParametersForSecondaryRevision()

		Expect(err).To(MatchError(params.ErrUnsupportedPackage))
	})

	It("should decode the T210B01 id of a package on T210", func() {
		simBus = simbus.MakeBuilder().
			WithClock(clock).
			WithFuseOdm4(strap.Encode(33, params.RevisionB)).
			Build("SimBus")
		s := MakeBuilder().
			WithBus(simBus).
			WithClock(clock).
			WithRevision(params.RevisionA).
			Build("SDRAM")

		Expect(s.PackageID()).To(Equal(strap.PackageID(1)))

		rec, err := s.ParametersForSecondaryRevision()
		Expect(err).NotTo(HaveOccurred())

		nine, err := params.Lookup(params.RevisionB, params.Patched(9))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec).To(Equal(nine))
	})

	It("should refuse a second initialization", func() {
		s := build(params.RevisionA, 0, params.VendorSamsung, 0x10)
		Expect(s.Initialize()).To(Succeed())

		Expect(s.Initialize()).To(MatchError(emc.ErrAlreadyInitialized))
	})

	It("should refuse to save before initialization", func() {
		s := build(params.RevisionA, 0, params.VendorSamsung, 0x10)

		_, err := s.SaveSleepParameters()

		Expect(err).To(MatchError(emc.ErrNotInitialized))
	})

	It("should refuse mode register reads before initialization", func() {
		s := build(params.RevisionA, 0, params.VendorSamsung, 0x10)

		_, err := s.ReadModeRegister(emc.MR5ManID)

		Expect(err).To(MatchError(emc.ErrNotInitialized))
	})

	It("should read the manufacturer of every device", func() {
		s := build(params.RevisionA, 2, params.VendorMicron, 0x10)
		Expect(s.Initialize()).To(Succeed())

		v, err := s.ReadModeRegister(emc.MR5ManID)

		Expect(err).NotTo(HaveOccurred())
		Expect(v.Chip0.Bytes()).To(Equal([4]uint8{0xFF, 0xFF, 0xFF, 0xFF}))
		Expect(v.Chip1.Bytes()).To(Equal([4]uint8{0xFF, 0xFF, 0xFF, 0xFF}))
	})

	It("should come back from sleep in a new boot", func() {
		s := build(params.RevisionB, 25, params.VendorMicron, 0x10)
		Expect(s.Initialize()).To(Succeed())
		verification := s.Controller().Verification()

		snap, err := s.SaveSleepParameters()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.State()).To(Equal(emc.Suspended))

		simBus.PowerOnReset()
		woken := MakeBuilder().
			WithBus(simBus).
			WithClock(clock).
			WithRevision(params.RevisionB).
			Build("SDRAM")

		loaded := woken.LoadSleepParameters()
		Expect(loaded).To(Equal(snap))
		Expect(woken.Resume(loaded)).To(Succeed())
		Expect(woken.State()).To(Equal(emc.Ready))
		Expect(woken.Controller().Verification()).To(Equal(verification))
		Expect(simBus.Violations()).To(BeEmpty())
	})

	It("should resume the same subsystem", func() {
		s := build(params.RevisionA, 4, params.VendorSamsung, 0x14)
		Expect(s.Initialize()).To(Succeed())
		snap, err := s.SaveSleepParameters()
		Expect(err).NotTo(HaveOccurred())

		simBus.PowerOnReset()

		Expect(s.Resume(snap)).To(Succeed())
		Expect(s.State()).To(Equal(emc.Ready))
	})

	It("should pass hooks to the controller", func() {
		buf := new(bytes.Buffer)
		simBus = simbus.MakeBuilder().
			WithClock(clock).
			WithFuseOdm4(strap.Encode(0, params.RevisionA)).
			WithDevice(uint8(params.VendorHynix), 0x10).
			Build("SimBus")
		s := MakeBuilder().
			WithBus(simBus).
			WithClock(clock).
			WithHook(emc.NewMismatchLogger(log.New(buf, "", 0))).
			WithHook(hooking.NewTaskLogger(log.New(buf, "", 0), nil)).
			Build("SDRAM")

		Expect(s.Initialize()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("DRAM vendor mismatch"))
		Expect(buf.String()).To(ContainSubstring("initialize@SDRAM.EMC"))
		Expect(s.Controller().Verification().OK()).To(BeFalse())
	})

	It("should need a bus", func() {
		Expect(func() { MakeBuilder().Build("SDRAM") }).To(Panic())
	})

	It("should refuse a malformed name", func() {
		build(params.RevisionA, 0, params.VendorSamsung, 0x10)

		Expect(func() {
			MakeBuilder().WithBus(simBus).Build("sdram.emc")
		}).To(Panic())
	})
})
