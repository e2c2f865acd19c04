package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdraminit/sdram/emc"
	"github.com/sarchlab/sdraminit/sdram/params"
)

var _ = Describe("Rig", func() {
	var o options

	BeforeEach(func() {
		o = options{
			revision:  "b",
			dramID:    20,
			pollLimit: 1000,
			vendorID:  -1,
		}
	})

	It("should cold boot the package the straps name", func() {
		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())

		Expect(coldBoot(r)).To(Succeed())
		Expect(r.sub.State()).To(Equal(emc.Ready))
		Expect(r.sub.Resolved()).To(Equal(params.Patched(5)))
		Expect(r.sim.Violations()).To(BeEmpty())
	})

	It("should reject an unknown revision", func() {
		o.revision = "c"

		_, err := newRig(o)

		Expect(err).To(HaveOccurred())
	})

	It("should reject an id the straps cannot hold", func() {
		o.dramID = 300

		_, err := newRig(o)

		Expect(err).To(HaveOccurred())
	})

	It("should fail on an unmapped id", func() {
		o.dramID = 7

		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())

		Expect(coldBoot(r)).To(MatchError(params.ErrUnsupportedPackage))
	})

	It("should report another vendor without failing", func() {
		o.vendorID = int(params.VendorHynix)

		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())

		Expect(coldBoot(r)).To(Succeed())
		Expect(r.sub.Controller().Verification().OK()).To(BeFalse())
	})

	It("should resume after a reboot", func() {
		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())
		Expect(coldBoot(r)).To(Succeed())

		_, err = r.sub.SaveSleepParameters()
		Expect(err).NotTo(HaveOccurred())

		r.reboot(o)
		Expect(r.sub.State()).To(Equal(emc.Uninitialized))

		Expect(r.sub.Resume(r.sub.LoadSleepParameters())).To(Succeed())
		Expect(r.sub.State()).To(Equal(emc.Ready))
		Expect(r.sim.Violations()).To(BeEmpty())
	})

	It("should dump the controller state", func() {
		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())
		Expect(coldBoot(r)).To(Succeed())

		buf := new(bytes.Buffer)
		Expect(dumpState(buf, r.sub)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Ready"))
		Expect(buf.String()).To(ContainSubstring("EMC_RC"))
	})

	It("should record the trace", func() {
		o.record = filepath.Join(GinkgoT().TempDir(), "trace")

		r, err := newRig(o)
		Expect(err).NotTo(HaveOccurred())
		Expect(coldBoot(r)).To(Succeed())
		r.finish()
		r.finish()

		_, err = os.Stat(o.record + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
	})
})
