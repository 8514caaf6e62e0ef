// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/svj/nbeconnect/internal/db"
	"github.com/svj/nbeconnect/internal/flow"
	"github.com/svj/nbeconnect/internal/i18n"
	"github.com/svj/nbeconnect/internal/model"
	"github.com/svj/nbeconnect/internal/tui"
	"golang.org/x/term"
)

// runTUI is replaced in tests.
var runTUI = tui.Run

// readPassword reads a password without echo when stdin is a terminal.
// It reports false when no prompt was possible.
var readPassword = func(w io.Writer) (string, bool, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", false, nil
	}
	_, _ = fmt.Fprint(w, i18n.T("cli.password_prompt"))
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", true, fmt.Errorf("could not read password: %w", err)
	}
	return string(b), true, nil
}

func defaultStore() (db.Store, error) {
	s := db.DefaultStore()
	if s == nil {
		return nil, errors.New("database is not initialized")
	}
	return s, nil
}

func runInteractiveSetup(cmd *cobra.Command) error {
	s, err := defaultStore()
	if err != nil {
		return err
	}
	mgr := flow.NewManager(s)
	res, err := mgr.StartConfig(cmd.Context())
	if err != nil {
		return err
	}
	return runInteractive(cmd, mgr, res)
}

func runInteractive(cmd *cobra.Command, mgr *flow.Manager, start flow.Result) error {
	res, err := runTUI(cmd.Context(), mgr, start, tui.Options{Input: cmd.InOrStdin(), Output: cmd.OutOrStdout()})
	if errors.Is(err, tui.ErrCancelled) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("flow.result.cancelled"))
		return nil
	}
	if err != nil {
		return err
	}
	if res.Type == flow.ResultAbort {
		return errors.New(tui.Outcome(res))
	}
	return nil
}

// submitOnce feeds input to the flow started as start and reports the
// outcome on out. Validation errors and aborts become errors.
func submitOnce(ctx context.Context, out io.Writer, mgr *flow.Manager, start flow.Result, input map[string]string) error {
	res, err := mgr.Configure(ctx, start.FlowID, input)
	if err != nil {
		return err
	}
	switch res.Type {
	case flow.ResultForm:
		mgr.Abort(res.FlowID)
		code := res.BaseError()
		return errors.New(i18n.TOr("flow.error."+code, code))
	case flow.ResultAbort:
		return errors.New(tui.Outcome(res))
	}
	_, _ = fmt.Fprintln(out, tui.Outcome(res))
	return nil
}

// resolveEntry finds an entry by ID, by unique ID or by its current serial.
func resolveEntry(ctx context.Context, s db.Store, ref string) (*model.Entry, error) {
	e, err := s.GetEntry(ctx, ref)
	if err != nil || e != nil {
		return e, err
	}
	e, err = s.GetEntryByUniqueID(ctx, model.Domain, ref)
	if err != nil || e != nil {
		return e, err
	}
	all, err := s.GetAllEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Data.Serial == ref {
			return &all[i], nil
		}
	}
	return nil, errors.New(i18n.T("cli.entry_not_found", ref))
}

func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().String("serial", "", "Boiler serial number")
	cmd.Flags().String("password", "", "Boiler password (prompted when omitted on a terminal)")
	cmd.Flags().String("ip-address", "", "Fixed boiler IP address (optional)")
}

func anyEntryFlagChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"serial", "password", "ip-address"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure a new boiler",
		Long: `Configures a new NBE boiler. Without flags the interactive form is shown.
Any of --serial, --password or --ip-address configures the boiler directly;
a missing --password is prompted for when stdin is a terminal.

Example:
  nbeconnect setup --serial 12345 --password secret --ip-address 192.168.1.50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyEntryFlagChanged(cmd) {
				return runInteractiveSetup(cmd)
			}
			s, err := defaultStore()
			if err != nil {
				return err
			}

			serial, _ := cmd.Flags().GetString("serial")
			password, _ := cmd.Flags().GetString("password")
			ip, _ := cmd.Flags().GetString("ip-address")
			if !cmd.Flags().Changed("password") {
				if pw, ok, err := readPassword(cmd.ErrOrStderr()); err != nil {
					return err
				} else if ok {
					password = pw
				}
			}

			mgr := flow.NewManager(s)
			start, err := mgr.StartConfig(cmd.Context())
			if err != nil {
				return err
			}
			return submitOnce(cmd.Context(), cmd.OutOrStdout(), mgr, start, map[string]string{
				model.KeySerial:    serial,
				model.KeyPassword:  password,
				model.KeyIPAddress: ip,
			})
		},
	}
	addEntryFlags(cmd)
	return cmd
}

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options <entry-id|serial>",
		Short: "Change the settings of a configured boiler",
		Long: `Edits a configured boiler. Without flags the interactive form is shown,
pre-filled with the current values. Flags replace single values and keep the
others; the stored record is always replaced as a whole.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := defaultStore()
			if err != nil {
				return err
			}
			e, err := resolveEntry(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}

			mgr := flow.NewManager(s)
			start, err := mgr.StartOptions(cmd.Context(), e.ID)
			if err != nil {
				return err
			}
			if !anyEntryFlagChanged(cmd) {
				return runInteractive(cmd, mgr, start)
			}

			input := start.Schema.Defaults()
			for flag, key := range map[string]string{
				"serial":     model.KeySerial,
				"password":   model.KeyPassword,
				"ip-address": model.KeyIPAddress,
			} {
				if cmd.Flags().Changed(flag) {
					input[key], _ = cmd.Flags().GetString(flag)
				}
			}
			return submitOnce(cmd.Context(), cmd.OutOrStdout(), mgr, start, input)
		},
	}
	addEntryFlags(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured boilers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := defaultStore()
			if err != nil {
				return err
			}
			entries, err := s.GetAllEntries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, i18n.T("cli.list_empty"))
				return nil
			}
			_, _ = fmt.Fprintln(out, i18n.T("cli.list_header"))
			for _, e := range entries {
				ip := e.Data.IPAddress
				if strings.TrimSpace(ip) == "" {
					ip = "-"
				}
				_, _ = fmt.Fprintf(out, "%-37s %-16s %-16s %s\n", e.ID, e.Data.Serial, ip, e.Title)
			}
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <entry-id|serial>",
		Aliases: []string{"rm"},
		Short:   "Remove a configured boiler",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := defaultStore()
			if err != nil {
				return err
			}
			e, err := resolveEntry(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteEntry(cmd.Context(), e.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.removed", e.ID))
			return nil
		},
	}
}
