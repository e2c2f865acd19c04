package datarecording

import (
	"github.com/sarchlab/sdraminit/hw"
	"github.com/sarchlab/sdraminit/hw/simbus"
	"github.com/sarchlab/sdraminit/sim/hooking"
)

// AccessHook records the register accesses of a traced bus and the
// violations of a simulated register file.
type AccessHook struct {
	recorder   DataRecorder
	timeTeller hooking.TimeTeller
	seq        int
}

// NewAccessHook creates the access and violation tables in recorder. The
// time teller may be nil, in which case no time is recorded.
func NewAccessHook(
	recorder DataRecorder,
	timeTeller hooking.TimeTeller,
) *AccessHook {
	recorder.CreateTable(TableAccesses, AccessEntry{})
	recorder.CreateTable(TableViolations, ViolationEntry{})

	return &AccessHook{
		recorder:   recorder,
		timeTeller: timeTeller,
	}
}

// Func records the access or the violation.
func (h *AccessHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hw.HookPosRegRead, hw.HookPosRegWrite:
		a := ctx.Item.(hw.Access)
		h.recorder.InsertData(TableAccesses, AccessEntry{
			Seq:   h.seq,
			Time:  h.now(),
			Write: a.Write,
			Addr:  a.Addr,
			Reg:   a.Name(),
			Value: a.Value,
		})
		h.seq++
	case simbus.HookPosViolation:
		v := ctx.Item.(simbus.Violation)
		h.recorder.InsertData(TableViolations, ViolationEntry{
			Seq:    v.Seq,
			Addr:   v.Addr,
			Reg:    hw.RegName(v.Addr),
			Reason: v.Reason,
		})
	}
}

func (h *AccessHook) now() float64 {
	if h.timeTeller == nil {
		return 0
	}

	return h.timeTeller.Now()
}
