package datarecording

import (
	"os"
	"strings"
	"time"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

// SessionRecorder records how a recording session was run: the command line,
// when it started and ended, and any property the caller adds.
type SessionRecorder struct {
	recorder DataRecorder
	entries  []SessionEntry
	now      func() time.Time
}

// NewSessionRecorder creates the session table in recorder.
func NewSessionRecorder(recorder DataRecorder) *SessionRecorder {
	recorder.CreateTable(TableSession, SessionEntry{})

	return &SessionRecorder{
		recorder: recorder,
		now:      time.Now,
	}
}

// Start records the start time and the command line.
func (s *SessionRecorder) Start() {
	s.Set("Start Time", s.now().Format(timeFormat))
	s.Set("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		s.Set("Working Directory", wd)
	}
}

// Set records a property of the session.
func (s *SessionRecorder) Set(property, value string) {
	s.entries = append(s.entries, SessionEntry{property, value})
}

// End writes the session with its end time and flushes the recorder.
func (s *SessionRecorder) End() {
	s.Set("End Time", s.now().Format(timeFormat))

	for _, e := range s.entries {
		s.recorder.InsertData(TableSession, e)
	}

	s.entries = nil

	s.recorder.Flush()
}
