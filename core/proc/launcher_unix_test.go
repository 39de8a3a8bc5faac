//go:build unix

package proc

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestLaunch_interruptReachesChildOnly(t *testing.T) {
	requirePrograms(t, "sleep")
	events := &recordingEvents{}
	l := NewLauncher(afero.NewOsFs(), vos.NewNullIO(), events)

	go func() {
		// Wait for the child to start, the launcher is listening by then.
		for i := 0; i < 200; i++ {
			for _, e := range events.snapshot() {
				if _, ok := e.(*logger.ProcessStarted); ok {
					syscall.Kill(os.Getpid(), syscall.SIGINT)
					return
				}
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	start := time.Now()
	res, err := l.Launch(&Plan{Argv: []string{"sleep", "5"}})
	assert.Nil(t, err)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 4*time.Second)
}
