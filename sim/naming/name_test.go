package naming

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	DescribeTable("should accept",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).NotTo(Panic())
		},
		Entry("one element", "SDRAM"),
		Entry("a hierarchy", "SDRAM.EMC"),
		Entry("an index", "SoC.Emc[1]"),
		Entry("two indices", "Dram[0][1]"),
	)

	DescribeTable("should reject",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).To(Panic())
		},
		Entry("an empty name", ""),
		Entry("an empty element", "SDRAM..EMC"),
		Entry("a trailing dot", "SDRAM."),
		Entry("a lower case start", "sdram"),
		Entry("an underscore", "SDRAM_EMC"),
		Entry("a dash", "SDRAM-EMC"),
		Entry("an open bracket", "Emc[0"),
		Entry("a close bracket", "Emc0]"),
		Entry("a text index", "Emc[a]"),
	)

	It("should build names", func() {
		Expect(BuildName("", "SDRAM")).To(Equal("SDRAM"))
		Expect(BuildName("SDRAM", "EMC")).To(Equal("SDRAM.EMC"))
		Expect(BuildNameWithIndex("SoC", "Emc", 1)).To(Equal("SoC.Emc[1]"))
	})
})
