package hooking

// PhaseTimeTracer accumulates how long each kind of task took, keyed by the
// task's What. Phases of the bring-up never overlap, so the time of a task is
// simply its end time minus its start time.
type PhaseTimeTracer struct {
	timeTeller    TimeTeller
	filter        TaskFilter
	inflightTasks map[string]Task
	phaseNames    []string
	phaseTime     map[string]float64
	totalTime     float64
}

// NewPhaseTimeTracer creates a new PhaseTimeTracer. A nil filter accepts
// every task.
func NewPhaseTimeTracer(
	timeTeller TimeTeller,
	filter TaskFilter,
) *PhaseTimeTracer {
	t := &PhaseTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]Task),
		phaseTime:     make(map[string]float64),
	}

	return t
}

// Func records the start end of a task.
func (t *PhaseTimeTracer) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTaskStart:
		t.StartTask(ctx.Item.(TaskStart))
	case HookPosTaskEnd:
		t.EndTask(ctx.Item.(TaskEnd))
	}
}

// StartTask records the task start time.
func (t *PhaseTimeTracer) StartTask(taskStart TaskStart) {
	if t.filter != nil && !t.filter(taskStart) {
		return
	}

	t.inflightTasks[taskStart.ID] = Task{
		ID:        taskStart.ID,
		What:      taskStart.What,
		StartTime: t.timeTeller.Now(),
	}
}

// EndTask records the end of the task.
func (t *PhaseTimeTracer) EndTask(taskEnd TaskEnd) {
	task, ok := t.inflightTasks[taskEnd.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, taskEnd.ID)

	task.EndTime = t.timeTeller.Now()
	duration := task.Duration()

	if _, seen := t.phaseTime[task.What]; !seen {
		t.phaseNames = append(t.phaseNames, task.What)
	}

	t.phaseTime[task.What] += duration
	t.totalTime += duration
}

// PhaseNames returns the names of the phases that completed, in the order
// they first completed.
func (t *PhaseTimeTracer) PhaseNames() []string {
	return t.phaseNames
}

// PhaseTime returns the accumulated time of a phase.
func (t *PhaseTimeTracer) PhaseTime(what string) float64 {
	return t.phaseTime[what]
}

// TotalTime returns the time of all completed tasks.
func (t *PhaseTimeTracer) TotalTime() float64 {
	return t.totalTime
}
