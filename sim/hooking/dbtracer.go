package hooking

// TracerBackend stores finished tasks.
type TracerBackend interface {
	Write(t Task)

	// Flush makes buffered tasks durable.
	Flush()
}

// DBTracer collects a task with its steps while it is open and hands it to
// the backend when it ends.
type DBTracer struct {
	timeTeller TimeTeller
	backend    TracerBackend
	open       map[string]Task
}

// NewDBTracer creates a DBTracer that timestamps with timeTeller.
func NewDBTracer(timeTeller TimeTeller, backend TracerBackend) *DBTracer {
	return &DBTracer{
		timeTeller: timeTeller,
		backend:    backend,
		open:       make(map[string]Task),
	}
}

// Func dispatches task items. Other positions are ignored.
func (t *DBTracer) Func(ctx HookCtx) {
	switch item := ctx.Item.(type) {
	case TaskStart:
		t.start(item)
	case TaskStep:
		t.step(item)
	case TaskEnd:
		t.end(item)
	}
}

func (t *DBTracer) start(s TaskStart) {
	taskStartMustBeComplete(s)

	t.open[s.ID] = Task{
		ID:        s.ID,
		ParentID:  s.ParentID,
		Kind:      s.Kind,
		What:      s.What,
		Where:     s.Where,
		StartTime: t.timeTeller.Now(),
	}
}

func taskStartMustBeComplete(s TaskStart) {
	switch "" {
	case s.ID:
		panic("task without ID")
	case s.Kind:
		panic("task " + s.ID + " without kind")
	case s.What:
		panic("task " + s.ID + " without what")
	case s.Where:
		panic("task " + s.ID + " without where")
	}
}

func (t *DBTracer) step(s TaskStep) {
	task, ok := t.open[s.TaskID]
	if !ok {
		return
	}

	task.Steps = append(task.Steps, Step{
		ID:     s.StepID,
		Time:   t.timeTeller.Now(),
		Kind:   s.Kind,
		What:   s.What,
		Detail: s.Detail,
	})
	t.open[s.TaskID] = task
}

func (t *DBTracer) end(e TaskEnd) {
	task, ok := t.open[e.ID]
	if !ok {
		return
	}

	delete(t.open, e.ID)

	task.EndTime = t.timeTeller.Now()
	task.Err = e.Err
	t.backend.Write(task)
}

// Terminate closes the tasks that are still open at the current time,
// writes them, and flushes the backend.
func (t *DBTracer) Terminate() {
	for id, task := range t.open {
		task.EndTime = t.timeTeller.Now()
		t.backend.Write(task)
		delete(t.open, id)
	}

	t.backend.Flush()
}
