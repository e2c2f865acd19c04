package timing

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeCounter struct {
	value uint32
	reads int
}

func (c *fakeCounter) Read32(addr uint32) uint32 {
	c.reads++
	c.value++

	return c.value
}

var _ = Describe("SimClock", func() {
	It("should advance on delay", func() {
		c := NewSimClock("Clock")

		c.DelayUs(250)
		c.DelayUs(750)

		Expect(float64(c.Now())).To(BeNumerically("~", 1e-3, 1e-12))
	})

	It("should log delays", func() {
		buf := new(bytes.Buffer)
		c := NewSimClock("Clock")
		c.AcceptHook(NewDelayLogger(log.New(buf, "", 0)))

		c.DelayUs(5)

		Expect(buf.String()).To(ContainSubstring("wait 5 us"))
	})

	It("should refuse to move backwards", func() {
		c := NewSimClock("Clock")

		Expect(func() { c.Advance(-1) }).To(Panic())
	})

	It("should tell time to tracers", func() {
		c := NewSimClock("Clock")
		c.DelayUs(2)

		Expect(AsTimeTeller(c).Now()).To(BeNumerically("~", 2e-6, 1e-12))
	})
})

var _ = Describe("CounterClock", func() {
	It("should spin until the counter passes the delay", func() {
		counter := &fakeCounter{}
		c := NewCounterClock(counter, 0x60005010)

		c.DelayUs(10)

		Expect(counter.value).To(BeNumerically(">", 10))
	})

	It("should handle counter wrap around", func() {
		counter := &fakeCounter{value: 0xFFFFFFF0}
		c := NewCounterClock(counter, 0x60005010)

		c.DelayUs(0x20)

		Expect(counter.value).To(BeNumerically("<", uint32(0x100)))
	})
})

var _ = Describe("Freq", func() {
	It("should print in MHz", func() {
		Expect((204 * MHz).String()).To(Equal("204.0 MHz"))
		Expect((1600 * MHz).String()).To(Equal("1600.0 MHz"))
	})

	It("should convert microseconds", func() {
		Expect(float64(Microseconds(1500))).To(BeNumerically("~", 1.5e-3, 1e-12))
	})
})
