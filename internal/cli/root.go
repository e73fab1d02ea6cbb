package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sdejongh/durduff/pkg/models"
	"github.com/spf13/cobra"
)

// runEnv carries the process streams into a command invocation
type runEnv struct {
	binName   string
	stdout    io.Writer
	stderr    io.Writer
	stdoutTTY bool
	stderrTTY bool

	// exitCode is set by the command that ran
	exitCode int
}

// NewRootCommand creates the durduff command tree. The root command itself
// runs the diff; config and version are subcommands.
func NewRootCommand(env *runEnv) *cobra.Command {
	flags := &DiffFlags{}

	cmd := &cobra.Command{
		Use:   env.binName + " [flags] <old> <new>",
		Short: "Compares directories file by file",
		Long: `durduff compares two directory trees file by file and prints one line per
difference: "-" for paths only in <old>, "+" for paths only in <new>, "~" for
paths whose type, symlink target or contents differ, and "!" for paths that
could not be compared.

Exit status: 0 trees same, 1 trees differ, 2 trees same with errors,
3 trees differ with errors, 4 fatal error.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runDiff(cmd, args, flags, env)
			if err != nil {
				return err
			}
			env.exitCode = code
			return nil
		},
	}

	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetVersionTemplate(env.binName + " {{.Version}}\n")

	AddGlobalFlags(cmd, flags)
	AddDiffFlags(cmd, flags)

	cmd.AddCommand(NewConfigCommand(flags))
	cmd.AddCommand(NewVersionCommand(env.binName))

	return cmd
}

// Run executes durduff with args (args[0] is the invocation name) and
// returns the process exit code
func Run(args []string, stdout, stderr io.Writer, stdoutTTY, stderrTTY bool) int {
	return RunContext(context.Background(), args, stdout, stderr, stdoutTTY, stderrTTY)
}

// RunContext is Run with a caller-provided context
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer, stdoutTTY, stderrTTY bool) int {
	env := &runEnv{
		binName:   "durduff",
		stdout:    stdout,
		stderr:    stderr,
		stdoutTTY: stdoutTTY,
		stderrTTY: stderrTTY,
	}
	if len(args) > 0 {
		env.binName = filepath.Base(args[0])
		args = args[1:]
	}

	cmd := NewRootCommand(env)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", env.binName, err)
		return models.ExitFatal
	}

	return env.exitCode
}
