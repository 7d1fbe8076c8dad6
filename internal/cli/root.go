package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/passbook"
	"github.com/Makepad-fr/securix/internal/ui"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage or validation error.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Storage    string
	Theme      string
	NoColor    bool

	rt *runtime
}

// ExitCodeError carries the process exit code for an error.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }
func (e *ExitCodeError) Unwrap() error { return e.Err }

func usageError(err error) error { return &ExitCodeError{Code: ExitUsage, Err: err} }

// usageArgs marks positional-argument failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// NewRootCommand creates the securix command tree. Without a subcommand it
// starts the interactive password book.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "securix",
		Short:         "securix - a local password book",
		Long:          "Keep website/username/password entries in a local store, list them with masked passwords and copy them to the clipboard.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.rt = rt
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	f := cmd.PersistentFlags()
	f.StringVar(&opts.ConfigPath, "config", "", "config file (default <data-dir>/config.yaml)")
	f.StringVar(&opts.DataDir, "data-dir", "", "directory holding the store (default ~/.securix)")
	f.StringVar(&opts.Storage, "storage", "", "storage backend (file|sqlite|memory)")
	f.StringVar(&opts.Theme, "theme", "", "color theme (classic|neon|mono)")
	f.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newCopyCommand(opts))

	return cmd
}

func (o *RootOptions) close() error {
	if o.rt == nil {
		return nil
	}
	err := o.rt.Close()
	o.rt = nil
	return err
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	// PersistentPostRun is skipped when RunE fails
	_ = closeRuntimeOf(root)

	code := exitCode(err)
	msg := err.Error()
	if errors.Is(err, model.ErrEmptyField) {
		msg = passbook.MsgFillAll
	}
	ui.Notify(stderr, msg, false)
	if code == ExitUsage && !errors.Is(err, model.ErrEmptyField) {
		ui.Hint(stderr, fmt.Sprintf("Run `%s --help` for usage.", root.CommandPath()))
	}
	return code
}

func closeRuntimeOf(root *cobra.Command) error {
	if root.PersistentPostRunE == nil {
		return nil
	}
	return root.PersistentPostRunE(root, nil)
}

func exitCode(err error) int {
	var ec *ExitCodeError
	switch {
	case errors.As(err, &ec):
		return ec.Code
	case errors.Is(err, model.ErrEmptyField), errors.Is(err, passbook.ErrNotFound):
		return ExitUsage
	case strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "unknown flag"),
		strings.HasPrefix(err.Error(), "unknown shorthand flag"):
		return ExitUsage
	}
	return ExitError
}
