package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

func Usage() string {
	return `hakim: courtroom simulation in the terminal

Usage:
  hakim                               start the game
  hakim status                        show progress and save state
  hakim reset                         start the career over
  hakim case [--progress <n>]         generate a case and print it as JSON
  hakim settings                      list player settings
  hakim settings set <key> <value>    change a player setting

Flags:
  --data-dir <dir>     where saves and logs live (default ~/.hakim)
  --store <kind>       file | sqlite | memory
  --oracle <kind>      gemini | command | fixture
  --fixtures <file>    YAML fixture file for the fixture oracle
  --verbose            debug logging
`
}

type globalFlags struct {
	dataDir  string
	store    string
	oracle   string
	fixtures string
	verbose  bool
}

// Run parses args and executes the matching command, writing command output
// to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	root := NewRootCommand(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the hakim command tree.
func NewRootCommand(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "hakim",
		Short:         "Courtroom simulation: question the parties, weigh the evidence, rule.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs("hakim"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(cmd.Context(), flags)
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), Usage())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory for saves and logs")
	pf.StringVar(&flags.store, "store", "", "store backend: file, sqlite or memory")
	pf.StringVar(&flags.oracle, "oracle", "", "content oracle: gemini, command or fixture")
	pf.StringVar(&flags.fixtures, "fixtures", "", "YAML fixture file for the fixture oracle")
	pf.BoolVar(&flags.verbose, "verbose", false, "debug logging")

	root.AddCommand(
		newStatusCommand(flags),
		newResetCommand(flags),
		newCaseCommand(flags),
		newSettingsCommand(flags),
	)
	return root
}

func noArgs(name string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 0 {
			if name == "hakim" {
				return UsageError{Message: fmt.Sprintf("unknown command: %q", args[0])}
			}
			return UsageError{Message: fmt.Sprintf("%s takes no arguments", name)}
		}
		return nil
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return UsageError{Message: fmt.Sprintf("%s requires exactly %d argument(s): %s", cmd.Name(), n, usage)}
		}
		return nil
	}
}

// IsUsage reports whether err should be answered with the usage text.
func IsUsage(err error) bool {
	var ue UsageError
	return errors.As(err, &ue)
}
