package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

// LogType is implemented by every event that can be recorded.
type LogType interface {
	isLogType()
}

// RunCommand is recorded for every dispatched line.
type RunCommand struct {
	Command []string `json:"command"`
	Builtin bool     `json:"builtin"`
}

// UnknownCommand is recorded when an external program couldn't be started.
type UnknownCommand struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

// InvalidInvocation is recorded when a line or builtin call is malformed.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

// ProcessStarted is recorded when a child process is running.
type ProcessStarted struct {
	PID        int      `json:"pid"`
	Argv       []string `json:"argv"`
	Background bool     `json:"background"`
}

// ProcessExited is recorded when a child process has been reaped.
type ProcessExited struct {
	PID        int  `json:"pid"`
	ExitCode   int  `json:"exit_code"`
	Background bool `json:"background"`
}

func (*RunCommand) isLogType()        {}
func (*UnknownCommand) isLogType()    {}
func (*InvalidInvocation) isLogType() {}
func (*ProcessStarted) isLogType()    {}
func (*ProcessExited) isLogType()     {}

// LogEntry is a single line of the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	ProcessStarted    *ProcessStarted    `json:"process_started,omitempty"`
	ProcessExited     *ProcessExited     `json:"process_exited,omitempty"`
}

// GetLogType returns the event held by the entry, or nil if it holds none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.ProcessStarted != nil:
		return le.ProcessStarted
	case le.ProcessExited != nil:
		return le.ProcessExited
	default:
		return nil
	}
}

func (le *LogEntry) setLogType(event LogType) {
	switch event := event.(type) {
	case *RunCommand:
		le.RunCommand = event
	case *UnknownCommand:
		le.UnknownCommand = event
	case *InvalidInvocation:
		le.InvalidInvocation = event
	case *ProcessStarted:
		le.ProcessStarted = event
	case *ProcessExited:
		le.ProcessExited = event
	}
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction event logs.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It is safe for concurrent use.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID
	le.setLogType(event)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// EventRecorder records events, SessionLogger is the canonical
// implementation.
type EventRecorder interface {
	Record(event LogType) error
}

var _ EventRecorder = (*SessionLogger)(nil)

func (l *SessionLogger) Record(event LogType) error {
	if l == nil || l.Logger == nil {
		return nil
	}
	return l.recordLogType(l.sessionID, event)
}

// SessionID returns the ID attached to every recorded event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// NopEventRecorder discards all events.
type NopEventRecorder struct{}

func (*NopEventRecorder) Record(event LogType) error {
	return nil
}
