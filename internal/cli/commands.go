package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/toast"
	"github.com/Makepad-fr/securix/internal/tui"
	"github.com/Makepad-fr/securix/internal/ui"
	"github.com/Makepad-fr/securix/internal/view"
)

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive password book (default)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *RootOptions) error {
	rt := opts.rt
	rt.log.Info("tui started")
	err := tui.Run(cmd.Context(), rt.svc, tui.Options{Toast: toast.New(rt.cfg.ToastDuration)})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "add <website> <username>",
		Short: "Save a password (prompts for it unless --password is given)",
		Example: `  securix add github.com octocat
  securix add example.org bob --password 'hunter2'`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				p, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			msg, err := opts.rt.svc.Submit(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return err
			}
			ui.Notify(cmd.OutOrStdout(), msg, true)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to store (visible in shell history)")
	return cmd
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var plain, asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored entries with masked passwords",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain && asJSON {
				return usageError(fmt.Errorf("--plain and --json are mutually exclusive"))
			}
			records, err := opts.rt.svc.Records(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				b, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("json marshal: %w", err)
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			case plain:
				return view.WriteText(out, view.Build(records))
			default:
				_, err := fmt.Fprintln(out, view.Pretty(view.Build(records)))
				return err
			}
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-aligned output without borders")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw stored array (passwords unmasked)")
	return cmd
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <website>",
		Aliases: []string{"delete"},
		Short:   "Delete every entry for a website",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := opts.rt.svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ui.Notify(cmd.OutOrStdout(), msg, true)
			return nil
		},
	}
}

var copyFields = map[string]view.ActionKind{
	"website":  view.CopyWebsite,
	"username": view.CopyUsername,
	"password": view.CopyPassword,
}

func newCopyCommand(opts *RootOptions) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "copy <website>",
		Short: "Copy a field of the first entry for a website to the clipboard",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := copyFields[field]
			if !ok {
				return usageError(fmt.Errorf("invalid field %q: must be website, username or password", field))
			}
			rec, err := opts.rt.svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			row := view.Build([]model.Record{rec}).Rows[0]
			out := opts.rt.svc.Copy(row.Action(kind).Value)
			if !out.OK() {
				return errors.New(out.Message())
			}
			ui.Notify(cmd.OutOrStdout(), out.Message(), true)
			return nil
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "password", "field to copy (website|username|password)")
	return cmd
}
