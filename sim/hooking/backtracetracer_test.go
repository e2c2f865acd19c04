package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubTaskPrinter struct {
	printed []Task
}

func (p *stubTaskPrinter) Print(task Task) {
	p.printed = append(p.printed, task)
}

func startCtx(id, parentID, what string) HookCtx {
	return HookCtx{
		Pos: HookPosTaskStart,
		Item: TaskStart{
			ID:       id,
			ParentID: parentID,
			Kind:     "phase",
			What:     what,
			Where:    "EMC",
		},
	}
}

func endCtx(id, err string) HookCtx {
	return HookCtx{
		Pos:  HookPosTaskEnd,
		Item: TaskEnd{ID: id, Err: err},
	}
}

var _ = Describe("BackTraceTracer", func() {
	var (
		printer *stubTaskPrinter
		t       *BackTraceTracer
	)

	BeforeEach(func() {
		printer = &stubTaskPrinter{}
		t = NewBackTraceTracer(printer)
	})

	It("should trace nested tasks", func() {
		t.Func(startCtx("1", "", "initialize"))
		t.Func(startCtx("2", "1", "training"))

		Expect(t.OpenTasks()).To(HaveLen(2))
		Expect(t.tracingTasks["2"].ParentID).To(Equal("1"))
	})

	It("should forget tasks that end successfully", func() {
		t.Func(startCtx("1", "", "initialize"))
		t.Func(startCtx("2", "1", "pre_init"))
		t.Func(endCtx("2", ""))

		Expect(t.OpenTasks()).To(HaveLen(1))
		Expect(t.OpenTasks()[0].What).To(Equal("initialize"))
	})

	It("should keep failed tasks and dump the chain", func() {
		t.Func(startCtx("1", "", "initialize"))
		t.Func(startCtx("2", "1", "training"))
		t.Func(endCtx("2", "calibration timeout"))

		t.DumpBackTrace("2")

		Expect(printer.printed).To(HaveLen(2))
		Expect(printer.printed[0].What).To(Equal("training"))
		Expect(printer.printed[0].Err).To(Equal("calibration timeout"))
		Expect(printer.printed[1].What).To(Equal("initialize"))
	})

	It("should dump all leaves", func() {
		t.Func(startCtx("1", "", "initialize"))
		t.Func(startCtx("2", "1", "training"))

		t.DumpAll()

		Expect(printer.printed).To(HaveLen(2))
		Expect(printer.printed[0].ID).To(Equal("2"))
	})
})
