package hooking

import (
	"log"
)

// TaskLogger is a hook that prints task starts, steps and ends.
type TaskLogger struct {
	logger     *log.Logger
	timeTeller TimeTeller
}

// NewTaskLogger returns a TaskLogger that writes into the logger. The time
// teller may be nil, in which case no timestamp is printed.
func NewTaskLogger(logger *log.Logger, timeTeller TimeTeller) *TaskLogger {
	return &TaskLogger{
		logger:     logger,
		timeTeller: timeTeller,
	}
}

// Func writes the task information into the logger.
func (h *TaskLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		item := ctx.Item.(TaskStart)
		h.print("start %s %s@%s", item.Kind, item.What, item.Where)
	case HookPosTaskStep:
		item := ctx.Item.(TaskStep)
		h.print("step %s %s", item.Kind, item.What)
	case HookPosTaskEnd:
		item := ctx.Item.(TaskEnd)
		if item.Err != "" {
			h.print("fail %s: %s", item.ID, item.Err)
			return
		}

		h.print("end %s", item.ID)
	}
}

func (h *TaskLogger) print(format string, args ...any) {
	if h.timeTeller == nil {
		h.logger.Printf(format, args...)
		return
	}

	args = append([]any{h.timeTeller.Now()}, args...)
	h.logger.Printf("%.6f, "+format, args...)
}
