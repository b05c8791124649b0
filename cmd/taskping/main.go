package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loykin/taskping"
)

func main() {
	defaults, err := taskping.LoadDefaults()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(taskping.ExitUsage)
	}
	root, exitCode := buildRoot(defaults)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(taskping.ExitUsage)
	}
	os.Exit(*exitCode)
}

// buildRoot creates the root command. The returned int receives the
// exit code to terminate with: the child's own code, 128+signal, the
// reserved launch-failure code, or ExitUsage for configuration errors.
func buildRoot(defaults taskping.Defaults) (*cobra.Command, *int) {
	flags := &RootFlags{}
	exitCode := new(int)

	cmd := &cobra.Command{
		Use:   "taskping [flags] -- command [args...]",
		Short: "Run a command and report the outcome to a healthchecks endpoint",
		Long: "taskping executes a command, captures up to 10k bytes of its combined\n" +
			"stdout and stderr, and pings a healthchecks-style monitoring endpoint\n" +
			"with the result. Its exit code always mirrors the command's own.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := taskping.Run(cmd.Context(), flags.toConfig(args))
			*exitCode = code
			return err
		},
	}
	flags.register(cmd, defaults)
	return cmd, exitCode
}
