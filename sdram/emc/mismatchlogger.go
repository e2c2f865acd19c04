package emc

import (
	"log"

	"github.com/sarchlab/sdraminit/sim/hooking"
)

// MismatchLogger prints devices that report an unexpected identity.
type MismatchLogger struct {
	logger *log.Logger
}

// NewMismatchLogger creates a MismatchLogger writing into logger.
func NewMismatchLogger(logger *log.Logger) *MismatchLogger {
	return &MismatchLogger{logger: logger}
}

// Func prints the mismatch.
func (h *MismatchLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosVerifyMismatch {
		return
	}

	m := ctx.Item.(Mismatch)
	if m.Register == MR5ManID {
		h.logger.Printf("%s: DRAM vendor mismatch: %s (%s instead of %s)",
			ctx.Domain.(hooking.Named).Name(), m,
			Vendor(m.Got), Vendor(m.Want))

		return
	}

	h.logger.Printf("%s: DRAM mismatch: %s",
		ctx.Domain.(hooking.Named).Name(), m)
}
