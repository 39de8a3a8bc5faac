package logger

import (
	"encoding/json"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int `json:"log_entries"`
	InvalidEntries int `json:"unknown_log_entries,omitempty"`

	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Process           ProcessReport           `json:"process_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *ProcessStarted:
		r.Process.updateStarted(event)
	case *ProcessExited:
		r.Process.updateExited(event)
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	// Names of builtins that were run.
	BuiltinNames StrCounter `json:"builtin_names"`
	// Names of external programs that were run.
	ProgramNames StrCounter `json:"program_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) == 0 {
		return
	}
	if rc.Builtin {
		r.BuiltinNames.Increment(rc.Command[0])
	} else {
		r.ProgramNames.Increment(rc.Command[0])
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}
	command := ""
	if len(logEntry.Command) > 0 {
		command = logEntry.Command[0]
	}
	r.Errors.Increment(command, logEntry.Error)
}

type ProcessReport struct {
	Started    int        `json:"started"`
	Background int        `json:"background"`
	Reaped     int        `json:"reaped"`
	ExitCodes  IntCounter `json:"exit_codes"`
}

func (r *ProcessReport) updateStarted(p *ProcessStarted) {
	r.Started++
	if p.Background {
		r.Background++
	}
}

func (r *ProcessReport) updateExited(p *ProcessExited) {
	r.Reaped++
	r.ExitCodes.Increment(p.ExitCode)
}

// Outstanding returns the number of started processes that were never
// recorded as exited.
func (r *ProcessReport) Outstanding() int {
	return r.Started - r.Reaped
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

// IntCounter counts the number of integers seen.
type IntCounter struct {
	internal map[int]int
}

// Increment adds one to the given key.
func (s *IntCounter) Increment(toAdd int) {
	if s.internal == nil {
		s.internal = make(map[int]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *IntCounter) Get(key int) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s IntCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given column values.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
