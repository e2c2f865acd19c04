package simbus

import (
	"log"

	"github.com/sarchlab/sdraminit/sim/hooking"
)

// ViolationLogger prints violations as they happen.
type ViolationLogger struct {
	logger *log.Logger
}

// NewViolationLogger creates a ViolationLogger writing into logger.
func NewViolationLogger(logger *log.Logger) *ViolationLogger {
	return &ViolationLogger{logger: logger}
}

// Func prints the violation.
func (h *ViolationLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosViolation {
		return
	}

	h.logger.Printf("violation %s", ctx.Item.(Violation))
}
