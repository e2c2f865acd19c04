package hooking

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// TaskPrinter can print tasks with a format.
type TaskPrinter interface {
	Print(task Task)
}

type defaultTaskPrinter struct {
	w io.Writer
}

func (p *defaultTaskPrinter) Print(task Task) {
	fmt.Fprintf(p.w, "%s-%s@%s\n", task.Kind, task.What, task.Where)
}

// BackTraceTracer keeps the tasks that have started but not ended. When the
// bring-up halts, the tasks that are still open tell where it stopped.
type BackTraceTracer struct {
	printer      TaskPrinter
	tracingTasks map[string]Task
	order        []string
}

// NewBackTraceTracer creates a new BackTraceTracer. A nil printer prints to
// stderr.
func NewBackTraceTracer(printer TaskPrinter) *BackTraceTracer {
	t := &BackTraceTracer{
		printer:      printer,
		tracingTasks: make(map[string]Task),
	}

	if t.printer == nil {
		t.printer = &defaultTaskPrinter{w: os.Stderr}
	}

	return t
}

// Func records the start and end of tasks.
func (t *BackTraceTracer) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		t.StartTask(ctx)
	case HookPosTaskEnd:
		t.EndTask(ctx)
	}
}

// StartTask records a task as open.
func (t *BackTraceTracer) StartTask(ctx HookCtx) {
	taskStart := ctx.Item.(TaskStart)

	currTask := Task{
		ID:       taskStart.ID,
		Kind:     taskStart.Kind,
		What:     taskStart.What,
		Where:    taskStart.Where,
		ParentID: taskStart.ParentID,
	}

	if named, ok := ctx.Domain.(Named); ok && currTask.Where == "" {
		currTask.Where = named.Name()
	}

	t.tracingTasks[taskStart.ID] = currTask
	t.order = append(t.order, taskStart.ID)
}

// EndTask removes a task from the open set if it completed successfully.
// Tasks that end with an error stay open so that they show up in the
// backtrace.
func (t *BackTraceTracer) EndTask(ctx HookCtx) {
	taskEnd := ctx.Item.(TaskEnd)

	task, ok := t.tracingTasks[taskEnd.ID]
	if !ok {
		return
	}

	task.Err = taskEnd.Err
	if task.Failed() {
		t.tracingTasks[taskEnd.ID] = task
		return
	}

	delete(t.tracingTasks, taskEnd.ID)
}

// OpenTasks returns the open tasks, oldest first.
func (t *BackTraceTracer) OpenTasks() []Task {
	tasks := make([]Task, 0, len(t.tracingTasks))

	for _, id := range t.order {
		task, ok := t.tracingTasks[id]
		if ok {
			tasks = append(tasks, task)
		}
	}

	return tasks
}

// DumpBackTrace prints the task and its open ancestors, innermost first.
func (t *BackTraceTracer) DumpBackTrace(taskID string) {
	currTask, ok := t.tracingTasks[taskID]

	for ok {
		t.printer.Print(currTask)

		taskID = currTask.ParentID
		currTask, ok = t.tracingTasks[taskID]
	}
}

// DumpAll prints every open task that has no open child, each followed by its
// ancestors.
func (t *BackTraceTracer) DumpAll() {
	isParent := make(map[string]bool)
	for _, task := range t.tracingTasks {
		isParent[task.ParentID] = true
	}

	leaves := make([]string, 0)
	for id := range t.tracingTasks {
		if !isParent[id] {
			leaves = append(leaves, id)
		}
	}

	sort.Strings(leaves)

	for _, id := range leaves {
		t.DumpBackTrace(id)
	}
}
