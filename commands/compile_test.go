package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

// scriptedRunner records the programs it's asked to run and replies with
// canned exit codes.
type scriptedRunner struct {
	calls [][]string
	codes []int
	err   error
}

var _ vos.Runner = (*scriptedRunner)(nil)

func (r *scriptedRunner) Run(argv []string) (int, error) {
	r.calls = append(r.calls, argv)
	if r.err != nil {
		return -1, r.err
	}

	code := 0
	if len(r.codes) > 0 {
		code, r.codes = r.codes[0], r.codes[1:]
	}
	return code, nil
}

func TestCompileArgv(t *testing.T) {
	cases := map[string]struct {
		cfg    config.Compile
		source string
		want   []string
	}{
		"default": {
			cfg:    config.Compile{},
			source: "main.c",
			want:   []string{"gcc", "main.c", "-o", "./temp_program"},
		},
		"custom": {
			cfg:    config.Compile{Command: "cc -O2 {source} -o {output}", Output: "prog"},
			source: "main.c",
			want:   []string{"cc", "-O2", "main.c", "-o", "prog"},
		},
		"quoted-source": {
			cfg:    config.Compile{Command: `gcc "{source}" -o {output}`, Output: "out"},
			source: "my file.c",
			want:   []string{"gcc", "my file.c", "-o", "out"},
		},
		"placeholder-in-word": {
			cfg:    config.Compile{Command: "tcc -o{output} {source}", Output: "bin"},
			source: "a.c",
			want:   []string{"tcc", "-obin", "a.c"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := CompileArgv(tc.cfg, tc.source)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileArgv_empty(t *testing.T) {
	_, err := CompileArgv(config.Compile{Command: "   "}, "a.c")
	assert.NotNil(t, err)
}

func newCompileCmd(runner vos.Runner, cfg *config.Configuration, argv ...string) (*vostest.Cmd, *bytes.Buffer) {
	b, _ := Lookup("compile")
	cmd := vostest.Command(b.Invoke, "compile", argv...)
	if runner != nil {
		cmd.Runner = runner
	}
	cmd.Config = cfg

	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd, out
}

func TestCompile(t *testing.T) {
	runner := &scriptedRunner{codes: []int{0, 3}}
	cfg := &config.Configuration{Compile: config.Compile{Command: "cc {source} -o {output}", Output: "prog"}}
	cmd, out := newCompileCmd(runner, cfg, "main.c")

	assert.Nil(t, cmd.Run())
	assert.Equal(t, 3, cmd.ExitStatus, "exit status of the compiled program")
	assert.Equal(t, "Compilation successful. Running the program...\n", out.String())
	assert.Equal(t, [][]string{
		{"cc", "main.c", "-o", "prog"},
		{"./prog"},
	}, runner.calls)
}

func TestCompile_failed(t *testing.T) {
	runner := &scriptedRunner{codes: []int{1}}
	cmd, out := newCompileCmd(runner, nil, "broken.c")

	assert.Nil(t, cmd.Run())
	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Equal(t, "Compilation failed.\ncompile: compilation failed: gcc exited with status 1\n", out.String())

	// The program isn't run after a failed compile.
	assert.Len(t, runner.calls, 1)
}

func TestCompile_noCompiler(t *testing.T) {
	runner := &scriptedRunner{err: errors.New("gcc: command not found")}
	cmd, out := newCompileCmd(runner, nil, "main.c")

	assert.Nil(t, cmd.Run())
	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Contains(t, out.String(), "Compilation failed.\n")
	assert.Contains(t, out.String(), "gcc: command not found")
}

func TestCompileSource_errors(t *testing.T) {
	proc := vos.NewProc([]string{"compile", "main.c"}, &vos.ProcAttr{
		Runner: &scriptedRunner{codes: []int{2}},
	})

	_, err := CompileSource(proc, "main.c")
	assert.True(t, errors.Is(err, ErrCompileFailed), "got %v", err)

	// Without a runner nothing can be compiled.
	_, err = CompileSource(vos.NewProc(nil, nil), "main.c")
	assert.True(t, errors.Is(err, ErrCompileFailed), "got %v", err)
	assert.Contains(t, err.Error(), vos.ErrNoRunner.Error())
}
