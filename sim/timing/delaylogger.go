package timing

import (
	"log"

	"github.com/sarchlab/sdraminit/sim/hooking"
)

// DelayLogger prints every busy wait with the time it started.
type DelayLogger struct {
	logger *log.Logger
}

// NewDelayLogger creates a DelayLogger writing into logger.
func NewDelayLogger(logger *log.Logger) *DelayLogger {
	return &DelayLogger{logger: logger}
}

// Func prints the wait.
func (h *DelayLogger) Func(ctx hooking.HookCtx) {
	if d, ok := ctx.Item.(Delay); ok && ctx.Pos == HookPosDelay {
		h.logger.Printf("%.6f, wait %d us", float64(d.Start), d.Us)
	}
}
