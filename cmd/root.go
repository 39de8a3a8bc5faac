package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
)

// exitStatus carries a non-zero status out of a command without printing
// an error.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	return config.LoadOrDefault(cfgPath, log.New(cmd.ErrOrStderr(), "", 0))
}

// openEvents opens the configured event log. The returned closer is nil if
// event logging is disabled.
func openEvents(cfg *config.Configuration) (logger.EventRecorder, io.Closer, error) {
	fd, err := cfg.OpenEventLog()
	if err != nil {
		return nil, nil, fmt.Errorf("opening event log: %w", err)
	}
	if fd == nil {
		return &logger.NopEventRecorder{}, nil, nil
	}

	return logger.NewJsonLinesLogRecorder(fd).NewSession(), fd, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal line oriented shell",
	Long: `minish reads one line at a time and either runs one of its builtins
or launches a program with optional <, > and & handling.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		events, closer, err := openEvents(configuration)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		files := vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

		if cmd.Flags().Changed("command") {
			sh := shell.New(configuration, files, nil, events)
			sh.RunLine(commandLine)
			sh.Launcher.Reaper().Wait()

			if code := sh.LastStatus(); code != 0 {
				cmd.SilenceErrors = true
				return &exitStatus{code: code}
			}
			return nil
		}

		input, err := shell.NewReadlineInput(files)
		if err != nil {
			return err
		}
		defer input.Close()

		shell.New(configuration, files, input, events).Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var status *exitStatus
	if errors.As(err, &status) {
		os.Exit(status.code)
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config directory or config.yaml path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit with its status")
}
