package lp0

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/hw/simbus"
	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sim/timing"
)

var _ = Describe("Manager", func() {
	var (
		clock    *timing.SimClock
		simBus   *simbus.Bus
		traced   *hw.TracedBus
		recorder *hw.AccessRecorder
		seq      *emc.Sequencer
		manager  *Manager
		bus      simbus.Builder
	)

	build := func(rev params.Revision, r params.Resolved) {
		record, err := params.Lookup(rev, r)
		Expect(err).NotTo(HaveOccurred())

		simBus = bus.
			WithClock(clock).
			WithDevice(uint8(record.Vendor), record.Density).
			Build("SimBus")
		traced = hw.NewTracedBus("Bus", simBus, false)
		traced.AcceptHook(recorder)

		seq = emc.MakeBuilder().
			WithBus(traced).
			WithClock(clock).
			WithRevision(rev).
			WithRecord(record).
			Build("EMC")
		manager = NewManager(traced, seq)
	}

	liveFields := func() map[uint32]uint32 {
		fields := make(map[uint32]uint32)
		for _, reg := range Registers() {
			fields[reg] = simBus.Peek(reg) & SavedMask(reg)
		}

		return fields
	}

	BeforeEach(func() {
		clock = timing.NewSimClock("Clock")
		recorder = hw.NewAccessRecorder()
		bus = simbus.MakeBuilder()
	})

	It("should refuse to save a controller that is not ready", func() {
		build(params.RevisionA, params.Direct(0))

		_, err := manager.Save(seq.Controller())

		Expect(err).To(MatchError(emc.ErrNotInitialized))
		Expect(recorder.IndexOf(hw.PmcScratch(0))).To(Equal(-1))
	})

	It("should write the snapshot to the scratch registers", func() {
		build(params.RevisionA, params.Direct(0))
		state, err := seq.Initialize()
		Expect(err).NotTo(HaveOccurred())

		snap, err := manager.Save(state)

		Expect(err).NotTo(HaveOccurred())
		for i, w := range snap.Words() {
			Expect(simBus.Peek(hw.PmcScratch(i))).To(Equal(w))
		}
		Expect(state.State()).To(Equal(emc.Suspended))
		Expect(simBus.Peek(hw.EmcSelfRef) & hw.EmcSelfRefEnable).
			NotTo(BeZero())
		Expect(manager.Load()).To(Equal(snap))
	})

	It("should refuse to save twice", func() {
		build(params.RevisionA, params.Direct(0))
		state, err := seq.Initialize()
		Expect(err).NotTo(HaveOccurred())
		_, err = manager.Save(state)
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Save(state)

		Expect(err).To(MatchError(emc.ErrNotInitialized))
	})

	It("should pack the trained trimmers", func() {
		build(params.RevisionA, params.Direct(0))
		state, err := seq.Initialize()
		Expect(err).NotTo(HaveOccurred())

		snap, err := manager.Save(state)
		Expect(err).NotTo(HaveOccurred())

		saved := Unpack(snap)
		for ch := 0; ch < params.RevisionA.NumChannels(); ch++ {
			reg := hw.EmcChannel(ch, hw.EmcPmacroIbDdllLongDqsRank0Off)
			Expect(saved[reg].Value).To(Equal(simbus.TrainedTrimmer(ch)))
			Expect(saved[reg].Mask).To(Equal(uint32(0x00FF00FF)))
		}
	})

	DescribeTable("should come back from sleep with the same registers",
		func(rev params.Revision, r params.Resolved) {
			build(rev, r)
			state, err := seq.Initialize()
			Expect(err).NotTo(HaveOccurred())
			before := liveFields()
			verification := state.Verification()

			_, err = manager.Save(state)
			Expect(err).NotTo(HaveOccurred())

			simBus.PowerOnReset()
			recorder.Reset()

			err = manager.Restore(manager.Load())

			Expect(err).NotTo(HaveOccurred())
			Expect(seq.State()).To(Equal(emc.Ready))
			Expect(liveFields()).To(Equal(before))
			Expect(seq.Controller().Verification()).To(Equal(verification))
			Expect(recorder.IndexOf(hw.EmcTrainingCmd)).To(Equal(-1))
			Expect(recorder.IndexOf(hw.EmcMrw)).To(Equal(-1))
			Expect(simBus.Violations()).To(BeEmpty())
		},
		Entry("T210 Samsung 4GB", params.RevisionA, params.Direct(0)),
		Entry("T210 Samsung 6GB", params.RevisionA, params.Direct(4)),
		Entry("T210B01 base", params.RevisionB, params.Direct(8)),
		Entry("T210B01 8GB", params.RevisionB, params.Patched(4)),
		Entry("T210B01 Hynix", params.RevisionB, params.Patched(7)),
	)

	It("should run the warm ZQ calibration on resume", func() {
		build(params.RevisionB, params.Patched(3))
		state, err := seq.Initialize()
		Expect(err).NotTo(HaveOccurred())
		_, err = manager.Save(state)
		Expect(err).NotTo(HaveOccurred())
		simBus.PowerOnReset()
		recorder.Reset()

		Expect(manager.Restore(manager.Load())).To(Succeed())

		var zq []uint32
		for _, w := range recorder.Writes() {
			if w.Addr == hw.EmcZqCal {
				zq = append(zq, w.Value)
			}
		}
		Expect(zq).To(HaveLen(2))
		Expect(zq[0] & hw.EmcZqCalStart).NotTo(BeZero())
		Expect(zq[1] & hw.EmcZqCalLatch).NotTo(BeZero())
	})

	It("should leave self refresh when resumed without a power cycle", func() {
		build(params.RevisionA, params.Direct(0))
		state, err := seq.Initialize()
		Expect(err).NotTo(HaveOccurred())
		snap, err := manager.Save(state)
		Expect(err).NotTo(HaveOccurred())

		Expect(manager.Restore(snap)).To(Succeed())

		Expect(seq.State()).To(Equal(emc.Ready))
		Expect(simBus.Peek(hw.EmcSelfRef) & hw.EmcSelfRefEnable).To(BeZero())
	})

	It("should fail to restore a failed controller", func() {
		bus = bus.WithTrainingFailure()
		build(params.RevisionA, params.Direct(0))

		_, err := seq.Initialize()
		Expect(err).To(MatchError(emc.ErrTrainingFailed))

		err = manager.Restore(Snapshot{})

		Expect(err).To(MatchError(emc.ErrControllerFailed))
	})

	It("should need a bus and a sequencer", func() {
		Expect(func() { NewManager(nil, nil) }).To(Panic())
	})
})
