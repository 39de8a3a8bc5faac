package proc

import (
	"io"
	"os/exec"
	"sort"
	"sync"

	"github.com/josephlewis42/minish/core/logger"
)

// Reaper collects the exit status of background children so none of them
// linger as zombies. Each child gets a goroutine blocked in Wait, so the
// shell's control loop never blocks on them.
type Reaper struct {
	events logger.EventRecorder

	mu    sync.Mutex
	procs map[int]*exec.Cmd
	wg    sync.WaitGroup

	// OnExit, if set, is called from the reaping goroutine after a child
	// exits and has been removed from the outstanding set.
	OnExit func(pid, exitCode int)
}

func NewReaper(events logger.EventRecorder) *Reaper {
	if events == nil {
		events = &logger.NopEventRecorder{}
	}

	return &Reaper{
		events: events,
		procs:  make(map[int]*exec.Cmd),
	}
}

// Track takes ownership of a started command, closing toClose once it exits.
func (r *Reaper) Track(cmd *exec.Cmd, toClose io.Closer) {
	pid := cmd.Process.Pid

	r.mu.Lock()
	r.procs[pid] = cmd
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		waitErr := cmd.Wait()
		if toClose != nil {
			toClose.Close()
		}
		code := exitCode(cmd, waitErr)

		r.mu.Lock()
		delete(r.procs, pid)
		r.mu.Unlock()

		r.events.Record(&logger.ProcessExited{PID: pid, ExitCode: code, Background: true})
		if r.OnExit != nil {
			r.OnExit(pid, code)
		}
	}()
}

// Outstanding returns the sorted PIDs of children that haven't exited yet.
func (r *Reaper) Outstanding() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, len(r.procs))
	for pid := range r.procs {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}

// Wait blocks until every tracked child has been reaped.
func (r *Reaper) Wait() {
	r.wg.Wait()
}
