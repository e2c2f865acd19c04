package datarecording

import (
	"github.com/sarchlab/sdraminit/sim/hooking"
)

// TaskBackend stores the tasks of a hooking.DBTracer.
type TaskBackend struct {
	recorder DataRecorder
}

// NewTaskBackend creates the task and step tables in recorder.
func NewTaskBackend(recorder DataRecorder) *TaskBackend {
	recorder.CreateTable(TableTasks, TaskEntry{})
	recorder.CreateTable(TableSteps, StepEntry{})

	return &TaskBackend{recorder: recorder}
}

// Write stores a task and its steps.
func (b *TaskBackend) Write(t hooking.Task) {
	b.recorder.InsertData(TableTasks, TaskEntry{
		ID:        t.ID,
		ParentID:  t.ParentID,
		Kind:      t.Kind,
		What:      t.What,
		Location:  t.Where,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Err:       t.Err,
	})

	for _, s := range t.Steps {
		b.recorder.InsertData(TableSteps, StepEntry{
			TaskID: t.ID,
			ID:     s.ID,
			Time:   s.Time,
			Kind:   s.Kind,
			What:   s.What,
			Detail: s.Detail,
		})
	}
}

// Flush writes the buffered rows.
func (b *TaskBackend) Flush() {
	b.recorder.Flush()
}
