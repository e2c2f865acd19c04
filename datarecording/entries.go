package datarecording

// Names of the tables that the bring-up trace uses.
const (
	TableTasks      = "sdram_tasks"
	TableSteps      = "sdram_steps"
	TableAccesses   = "sdram_reg_accesses"
	TableViolations = "sdram_violations"
	TableSession    = "sdram_session"
)

// TaskEntry is one row of the task table. A task is a sequencing run or one
// of its phases.
type TaskEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
	Err       string
}

// StepEntry is one row of the step table. Steps are the table apply stages
// inside a phase.
type StepEntry struct {
	TaskID string
	ID     string
	Time   float64
	Kind   string
	What   string
	Detail string
}

// AccessEntry is one register access.
type AccessEntry struct {
	Seq   int
	Time  float64
	Write bool
	Addr  uint32
	Reg   string
	Value uint32
}

// ViolationEntry is one access that the simulated register file rejected.
type ViolationEntry struct {
	Seq    int
	Addr   uint32
	Reg    string
	Reason string
}

// SessionEntry is one property of a recording session.
type SessionEntry struct {
	Property string
	Value    string
}
