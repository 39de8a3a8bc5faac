package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/vos"
)

// ErrCompileFailed is returned when the compiler couldn't be run or exited
// with a non-zero status.
var ErrCompileFailed = errors.New("compilation failed")

const (
	defaultCompileCommand = "gcc {source} -o {output}"
	defaultCompileOutput  = "./temp_program"
)

// CompileArgv splits the configured compiler command into words and fills in
// the {source} and {output} placeholders.
func CompileArgv(cfg config.Compile, source string) ([]string, error) {
	command := cfg.Command
	if command == "" {
		command = defaultCompileCommand
	}

	words, err := shlex.Split(command, true)
	if err != nil {
		return nil, fmt.Errorf("parsing compile command: %w", err)
	}
	if len(words) == 0 {
		return nil, errors.New("empty compile command")
	}

	replacer := strings.NewReplacer("{source}", source, "{output}", compileOutput(cfg))
	for i, word := range words {
		words[i] = replacer.Replace(word)
	}
	return words, nil
}

func compileOutput(cfg config.Compile) string {
	if cfg.Output == "" {
		return defaultCompileOutput
	}
	return cfg.Output
}

// runnablePath makes sure a bare file name runs from the working directory
// rather than being looked up in PATH.
func runnablePath(path string) string {
	if filepath.Base(path) == path {
		return "." + string(filepath.Separator) + path
	}
	return path
}

// CompileSource runs the compiler on source and returns the path of the
// produced program.
func CompileSource(virtOS vos.VOS, source string) (string, error) {
	cfg := virtOS.Config().Compile

	argv, err := CompileArgv(cfg, source)
	if err != nil {
		return "", err
	}

	code, err := virtOS.Run(argv)
	switch {
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrCompileFailed, err)
	case code != 0:
		return "", fmt.Errorf("%w: %s exited with status %d", ErrCompileFailed, argv[0], code)
	}

	return runnablePath(compileOutput(cfg)), nil
}

// Compile builds a source file and runs the result in the foreground.
func Compile(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		w := virtOS.Stdout()

		program, err := CompileSource(virtOS, args[0])
		if err != nil {
			fmt.Fprintln(w, "Compilation failed.")
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		fmt.Fprintln(w, "Compilation successful. Running the program...")
		code, err := virtOS.Run([]string{program})
		if err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}
		return code
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "compile",
		MinArgs: 1,
		Use:     "compile SOURCE",
		Short:   "Compile SOURCE with the configured compiler and run the result.",
		Main:    Compile,
	})
}
