package patch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/strap"
)

var _ = Describe("Resolve", func() {
	It("should be the identity on T210", func() {
		for id := 0; id < 256; id++ {
			r := Resolve(params.RevisionA, strap.PackageID(id))

			Expect(r).To(Equal(params.Direct(uint8(id))))
		}
	})

	It("should give every member of a group the same code", func() {
		for code, ids := range Groups {
			for _, id := range ids {
				r := Resolve(params.RevisionB, id)

				Expect(r.Kind()).To(Equal(params.KindPatched))
				Expect(r.Index()).To(Equal(uint8(code)))
			}
		}
	})

	It("should keep the direct ids direct", func() {
		for _, id := range []strap.PackageID{8, 10, 12, 14} {
			Expect(Resolve(params.RevisionB, id)).
				To(Equal(params.Direct(uint8(id))))
		}
	})

	It("should mark everything else unmapped", func() {
		for _, id := range []strap.PackageID{0, 1, 2, 4, 7, 16, 35, 255} {
			Expect(Resolve(params.RevisionB, id)).
				To(Equal(params.Unmapped(uint8(id))))
		}
	})

	It("should resolve every T210B01 id to a record or an error", func() {
		for id := 0; id < 256; id++ {
			r, rec, err := Select(params.RevisionB, strap.PackageID(id))

			if r.Kind() == params.KindUnmapped {
				Expect(err).To(MatchError(params.ErrUnsupportedPackage))
				continue
			}

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Name).NotTo(BeEmpty())
		}
	})
})

var _ = Describe("Apply", func() {
	var base params.Record

	BeforeEach(func() {
		var err error
		base, err = params.BaseRecord(params.RevisionB)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should produce the records in the repository", func() {
		for code := uint8(1); code <= params.NumPatchCodes; code++ {
			rec, err := params.Lookup(params.RevisionB, params.Patched(code))
			Expect(err).NotTo(HaveOccurred())

			Expect(Apply(base, code)).To(Equal(rec))
		}
	})

	It("should only touch the patched params", func() {
		patched := Apply(base, 7)

		touched := map[params.Param]bool{}
		for _, e := range params.Patches() {
			if e.Applies(7) {
				touched[e.Param] = true
			}
		}

		for p := params.Param(0); p < params.NumParams; p++ {
			if !touched[p] {
				Expect(patched.Get(p)).To(Equal(base.Get(p)), p.String())
			}
		}
	})

	It("should refuse T210 records", func() {
		rec, _ := params.Lookup(params.RevisionA, params.Direct(0))

		Expect(func() { Apply(rec, 1) }).To(Panic())
	})
})

var _ = Describe("Scenarios", func() {
	It("should select the Hynix record for id 1 on T210", func() {
		r, rec, err := Select(params.RevisionA, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal(params.Direct(1)))
		Expect(rec.Vendor).To(Equal(params.VendorHynix))
	})

	It("should select the 8GB Samsung record for id 9", func() {
		r, rec, err := Select(params.RevisionB, 9)

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal(params.Patched(1)))
		Expect(rec.SizeMB).To(Equal(uint32(8192)))
		Expect(rec.Vendor).To(Equal(params.VendorSamsung))
	})

	It("should select the 1z Samsung record for id 20", func() {
		r, rec, err := Select(params.RevisionB, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal(params.Patched(5)))

		_, eight, _ := Select(params.RevisionB, 9)
		Expect(rec).NotTo(Equal(eight))
		Expect(rec.Name).To(ContainSubstring("1z"))
	})

	It("should fail for id 7", func() {
		r, _, err := Select(params.RevisionB, 7)

		Expect(r).To(Equal(params.Unmapped(7)))
		Expect(err).To(MatchError(params.ErrUnsupportedPackage))
	})
})
