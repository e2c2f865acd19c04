package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubBackend struct {
	written []Task
	flushed int
}

func (b *stubBackend) Write(t Task) {
	b.written = append(b.written, t)
}

func (b *stubBackend) Flush() {
	b.flushed++
}

var _ = Describe("DBTracer", func() {
	var (
		timeTeller *stubTimeTeller
		backend    *stubBackend
		t          *DBTracer
	)

	BeforeEach(func() {
		timeTeller = &stubTimeTeller{}
		backend = &stubBackend{}
		t = NewDBTracer(timeTeller, backend)
	})

	It("should panic if the task is incomplete", func() {
		Expect(func() {
			t.Func(HookCtx{Pos: HookPosTaskStart, Item: TaskStart{ID: "1"}})
		}).To(Panic())
	})

	It("should write a finished task with its steps", func() {
		t.Func(startCtx("1", "", "training"))
		timeTeller.now = 2
		t.Func(HookCtx{
			Pos: HookPosTaskStep,
			Item: TaskStep{
				TaskID: "1",
				Kind:   "poll",
				What:   "EMC_TRAINING_STATUS",
			},
		})
		timeTeller.now = 4
		t.Func(endCtx("1", ""))

		Expect(backend.written).To(HaveLen(1))
		Expect(backend.written[0].Steps).To(HaveLen(1))
		Expect(backend.written[0].Steps[0].Time).To(Equal(2.0))
		Expect(backend.written[0].Duration()).To(Equal(4.0))
		Expect(backend.written[0].Failed()).To(BeFalse())
	})

	It("should flush unfinished tasks on terminate", func() {
		t.Func(startCtx("1", "", "training"))

		t.Terminate()

		Expect(backend.written).To(HaveLen(1))
		Expect(backend.flushed).To(Equal(1))
	})

	It("should keep the error of a failed task", func() {
		t.Func(startCtx("1", "", "training"))
		t.Func(endCtx("1", "channel 1: training reported an error"))

		Expect(backend.written).To(HaveLen(1))
		Expect(backend.written[0].Failed()).To(BeTrue())
	})

	It("should ignore steps of unknown tasks", func() {
		t.Func(HookCtx{Pos: HookPosTaskStep, Item: TaskStep{TaskID: "9"}})
		t.Terminate()

		Expect(backend.written).To(BeEmpty())
	})
})
