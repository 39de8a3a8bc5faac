package shell

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func requirePrograms(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available: %v", name, err)
		}
	}
}

type recordingEvents struct {
	mu     sync.Mutex
	events []logger.LogType
}

func (r *recordingEvents) Record(event logger.LogType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEvents) count(match func(logger.LogType) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func isProcessStarted(ev logger.LogType) bool {
	_, ok := ev.(*logger.ProcessStarted)
	return ok
}

type testShell struct {
	*Shell
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	events *recordingEvents
}

func newTestShell(t *testing.T, input string) *testShell {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	events := &recordingEvents{}
	cfg := &config.Configuration{Prompt: "$ ", MaxLineLength: 1024}

	sh := New(cfg, vos.NewVIOAdapter(strings.NewReader(input), stdout, stderr), nil, events)
	t.Cleanup(sh.Launcher.Reaper().Wait)

	return &testShell{Shell: sh, stdout: stdout, stderr: stderr, events: events}
}

func TestRunLine_builtinNeverSpawns(t *testing.T) {
	sh := newTestShell(t, "")
	dir := t.TempDir()

	lines := []string{
		"createfile " + filepath.Join(dir, "a.txt"),
		"createdir " + filepath.Join(dir, "sub"),
		"help",
		"add 1 2",
	}
	for _, line := range lines {
		assert.False(t, sh.RunLine(line))
	}

	assert.Equal(t, 0, sh.events.count(isProcessStarted))
	assert.Equal(t, len(lines), sh.events.count(func(ev logger.LogType) bool {
		rc, ok := ev.(*logger.RunCommand)
		return ok && rc.Builtin
	}))
	assert.Empty(t, sh.stderr.String())
}

func TestRunLine_redirectThenOpenfile(t *testing.T) {
	requirePrograms(t, "echo")
	sh := newTestShell(t, "")
	out := filepath.Join(t.TempDir(), "out.txt")

	sh.RunLine("echo hi > " + out)
	assert.Equal(t, 0, sh.LastStatus())
	assert.Empty(t, sh.stdout.String(), "redirected output leaked to the terminal")

	sh.RunLine("openfile " + out)
	assert.Equal(t, "hi\n", sh.stdout.String())
	assert.Equal(t, 1, sh.events.count(isProcessStarted))
}

func TestRunLine_createThenSearch(t *testing.T) {
	sh := newTestShell(t, "")
	path := filepath.Join(t.TempDir(), "a.txt")

	sh.RunLine("createfile " + path)
	sh.stdout.Reset()

	sh.RunLine("search " + path + " hello")
	assert.Equal(t, "No matches found for 'hello' in "+path+".\n", sh.stdout.String())
	assert.Empty(t, sh.stderr.String())
}

func TestRunLine_missingOperand(t *testing.T) {
	sh := newTestShell(t, "")
	dir := t.TempDir()

	sh.RunLine("createfile")
	assert.Equal(t, "createfile: missing operand\nusage: createfile FILE\n", sh.stderr.String())
	assert.Equal(t, StatusUsage, sh.LastStatus())

	entries, err := afero.ReadDir(sh.Fs, dir)
	assert.Nil(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, 1, sh.events.count(func(ev logger.LogType) bool {
		_, ok := ev.(*logger.InvalidInvocation)
		return ok
	}))
	assert.Equal(t, 0, sh.events.count(isProcessStarted))
}

func TestRunLine_exit(t *testing.T) {
	sh := newTestShell(t, "")

	assert.True(t, sh.RunLine("exit"))
	assert.True(t, sh.RunLine("  exit now"))
	assert.False(t, sh.RunLine(""))
	assert.False(t, sh.RunLine("   "))
	assert.Empty(t, sh.stdout.String())
	assert.Empty(t, sh.stderr.String())
}

func TestRunLine_errors(t *testing.T) {
	cases := map[string]struct {
		line       string
		wantStderr string
		wantStatus int
	}{
		"not-found": {
			line:       "definitely-not-a-real-program-1f3a --flag",
			wantStderr: "minish: definitely-not-a-real-program-1f3a: command not found\n",
			wantStatus: 127,
		},
		"dangling-redirect": {
			line:       "cat <",
			wantStderr: "minish: syntax error: missing file name after \"<\"\n",
			wantStatus: StatusUsage,
		},
		"operator-as-target": {
			line:       "cat > &",
			wantStderr: "minish: syntax error: missing file name after \">\"\n",
			wantStatus: StatusUsage,
		},
		"too-long": {
			line:       "echo " + strings.Repeat("x", 1100),
			wantStderr: "minish: line too long: 1105 bytes, the limit is 1024\n",
			wantStatus: StatusUsage,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh := newTestShell(t, "")

			assert.False(t, sh.RunLine(tc.line))
			assert.Equal(t, tc.wantStderr, sh.stderr.String())
			assert.Equal(t, tc.wantStatus, sh.LastStatus())
			assert.Equal(t, 0, sh.events.count(isProcessStarted))
		})
	}
}

func TestRunLine_inputDenied(t *testing.T) {
	requirePrograms(t, "cat")
	sh := newTestShell(t, "")
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret.txt")
	out := filepath.Join(dir, "out.txt")
	assert.Nil(t, afero.WriteFile(sh.Fs, secret, []byte("secret"), 0200))
	assert.Nil(t, sh.Fs.Chmod(secret, 0200))

	sh.RunLine("cat < " + secret + " > " + out)
	assert.Contains(t, sh.stderr.String(), "insufficient permissions")
	assert.Equal(t, 0, sh.events.count(isProcessStarted))

	exists, _ := afero.Exists(sh.Fs, out)
	assert.False(t, exists)
}

func TestRunLine_background(t *testing.T) {
	requirePrograms(t, "sleep")
	sh := newTestShell(t, "")

	start := time.Now()
	assert.False(t, sh.RunLine("sleep 1 &"))
	assert.Less(t, int64(time.Since(start)), int64(900*time.Millisecond), "the shell blocked on a background child")
	assert.Equal(t, 0, sh.LastStatus())
	assert.Len(t, sh.Launcher.Reaper().Outstanding(), 1)

	sh.Launcher.Reaper().Wait()
	assert.Empty(t, sh.Launcher.Reaper().Outstanding())
}

func TestRun(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"exit": {
			input: "add 2 3\nexit\nadd 4 5\n",
			want:  "Result: 5.00\nThanks for using minish! Goodbye!\n",
		},
		"eof": {
			input: "\nmul 2 3",
			want:  "Result: 6.00\nThanks for using minish! Goodbye!\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh := newTestShell(t, tc.input)

			assert.Equal(t, 0, sh.Run())
			assert.Equal(t, tc.want, sh.stdout.String())
		})
	}
}

func TestRun_longLineDoesNotEndLoop(t *testing.T) {
	sh := newTestShell(t, strings.Repeat("x", 70000)+"\nadd 1 2\nexit\n")

	assert.Equal(t, 0, sh.Run())
	assert.Equal(t, "Result: 3.00\nThanks for using minish! Goodbye!\n", sh.stdout.String())
	assert.Equal(t, "minish: line too long: 70000 bytes, the limit is 1024\n", sh.stderr.String())
	assert.Equal(t, 1, sh.events.count(func(ev logger.LogType) bool {
		_, ok := ev.(*logger.InvalidInvocation)
		return ok
	}))
}

func TestRun_banner(t *testing.T) {
	sh := newTestShell(t, "exit\n")
	sh.Config.Banner = true

	sh.Run()
	assert.Contains(t, sh.stdout.String(), "Mini Shell (minish)")
	assert.Contains(t, sh.stdout.String(), "Type 'help'")
}

func TestRun_writefileSharesInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	input := strings.Join([]string{
		"writefile " + path,
		"first line",
		"second line",
		"done",
		"openfile " + path,
		"exit",
	}, "\n")
	sh := newTestShell(t, input)

	sh.Run()
	assert.Contains(t, sh.stdout.String(), "Finished writing to "+path+"\nfirst line\nsecond line\n")
	assert.Empty(t, sh.stderr.String())
}
