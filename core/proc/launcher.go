package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
)

// Result describes a launched process.
type Result struct {
	PID        int
	Background bool
	// ExitCode of a foreground process, -1 for background processes.
	ExitCode int
}

// Launcher starts external programs on the host.
type Launcher struct {
	// Fs is used to open redirection targets and run the permission gate.
	Fs vos.VFS
	// Files are the streams children inherit when not redirected.
	Files vos.VIO

	events logger.EventRecorder
	reaper *Reaper
}

var _ vos.Runner = (*Launcher)(nil)

// NewLauncher creates a launcher that reaps its own background children.
func NewLauncher(vfs vos.VFS, files vos.VIO, events logger.EventRecorder) *Launcher {
	if events == nil {
		events = &logger.NopEventRecorder{}
	}
	if files == nil {
		files = vos.NewNullIO()
	}

	return &Launcher{
		Fs:     vfs,
		Files:  files,
		events: events,
		reaper: NewReaper(events),
	}
}

// Reaper returns the reaper that owns this launcher's background children.
func (l *Launcher) Reaper() *Reaper {
	return l.reaper
}

// Launch runs the program described by plan. Foreground programs are waited
// for, background programs are handed to the reaper.
func (l *Launcher) Launch(plan *Plan) (*Result, error) {
	if plan == nil || len(plan.Argv) == 0 {
		return nil, ErrMissingCommand
	}

	var toClose listCloser
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	cmd.Stdin = nonNullReader(l.Files.Stdin())
	cmd.Stdout = nonNullWriter(l.Files.Stdout())
	cmd.Stderr = nonNullWriter(l.Files.Stderr())

	// Background programs mustn't compete with the shell for its input.
	if plan.Background {
		cmd.Stdin = nil
	}

	if plan.Input != "" {
		if err := vos.CheckAccess(l.Fs, plan.Input, vos.CanRead); err != nil {
			return nil, fmt.Errorf("input redirection: %w", err)
		}
		fd, err := l.Fs.Open(plan.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		toClose = append(toClose, fd)
		cmd.Stdin = fd
	}

	if plan.Output != "" {
		fd, err := l.Fs.OpenFile(plan.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			toClose.Close()
			return nil, fmt.Errorf("failed to open output file: %w", err)
		}
		toClose = append(toClose, fd)
		cmd.Stdout = fd
	}

	// Interrupts go to a foreground child, never to the shell.
	var interrupts chan os.Signal
	if !plan.Background {
		interrupts = make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
	}

	if err := cmd.Start(); err != nil {
		toClose.Close()
		return nil, classifyStartError(plan.Argv, err)
	}

	pid := cmd.Process.Pid
	l.events.Record(&logger.ProcessStarted{
		PID:        pid,
		Argv:       plan.Argv,
		Background: plan.Background,
	})

	if plan.Background {
		l.reaper.Track(cmd, toClose)
		return &Result{PID: pid, Background: true, ExitCode: -1}, nil
	}

	waitErr := waitForwarding(cmd, interrupts)
	toClose.Close()
	code := exitCode(cmd, waitErr)

	l.events.Record(&logger.ProcessExited{PID: pid, ExitCode: code})
	return &Result{PID: pid, ExitCode: code}, nil
}

// Run implements vos.Runner by launching argv in the foreground.
func (l *Launcher) Run(argv []string) (int, error) {
	res, err := l.Launch(&Plan{Argv: argv})
	if err != nil {
		return -1, err
	}
	return res.ExitCode, nil
}

// waitForwarding waits for cmd, passing any signal received on signals on
// to the child.
func waitForwarding(cmd *exec.Cmd, signals <-chan os.Signal) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case sig := <-signals:
				cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	return cmd.Wait()
}

// exitCode extracts the exit status of a finished command, -1 if it was
// killed by a signal or never reported one.
func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}

func nonNullReader(r io.Reader) io.Reader {
	if vos.IsNull(r) {
		return nil
	}
	return r
}

func nonNullWriter(w io.Writer) io.Writer {
	if vos.IsNull(w) {
		return nil
	}
	return w
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
