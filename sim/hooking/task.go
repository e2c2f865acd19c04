package hooking

// Positions at which task items are delivered. The sequencer opens one root
// task per boot, one child task per phase, and reports table apply steps.
var (
	HookPosTaskStart = &HookPos{Name: "HookPosTaskStart"}
	HookPosTaskStep  = &HookPos{Name: "HookPosTaskStep"}
	HookPosTaskEnd   = &HookPos{Name: "HookPosTaskEnd"}
)

// TaskStart opens a task. Kind groups tasks ("sdram", "sdram_phase"), What
// names it ("initialize", "table_apply") and Where is the owner's name.
type TaskStart struct {
	ID       string
	ParentID string
	Kind     string
	What     string
	Where    string
}

// TaskStep is a point event inside an open task.
type TaskStep struct {
	TaskID string
	StepID string
	Kind   string
	What   string
	Detail string
}

// TaskEnd closes a task. Err is empty on success.
type TaskEnd struct {
	ID  string
	Err string
}

// Step is a TaskStep with the time it happened.
type Step struct {
	ID     string
	Time   float64
	Kind   string
	What   string
	Detail string
}

// Task is a task collected from its start to its end.
type Task struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Where     string
	StartTime float64
	EndTime   float64
	Err       string
	Steps     []Step
}

// Failed tells whether the task ended with an error.
func (t Task) Failed() bool {
	return t.Err != ""
}

// Duration returns the virtual time between the start and the end.
func (t Task) Duration() float64 {
	return t.EndTime - t.StartTime
}

// TaskFilter selects the tasks a tracer keeps.
type TaskFilter func(t TaskStart) bool

// TimeTeller tells the current virtual time in seconds. The timing package
// clocks satisfy it.
type TimeTeller interface {
	Now() float64
}
