// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/svj/nbeconnect/internal/backup"
	"github.com/svj/nbeconnect/internal/i18n"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := defaultStore()
			if err != nil {
				return err
			}
			entries, err := s.GetAllAuditLogEntries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, i18n.T("cli.audit_empty"))
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(out, "%s  %-12s %-16s %s\n", e.Timestamp, e.Username, e.Action, e.Details)
			}
			return nil
		},
	}
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of all boilers",
		Long: `Writes every configured boiler into a single Zstandard-compressed JSON file.
The file contains the boiler passwords in plain text; store it accordingly.

If an output file is given, '.zst' is appended when missing. Without one,
'nbeconnect-backup-YYYY-MM-DD.json.zst' is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("nbeconnect-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			s, err := defaultStore()
			if err != nil {
				return err
			}
			f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("could not create file: %w", err)
			}
			n, err := backup.Export(cmd.Context(), s, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_written", n, outputFile))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: "Restore boilers from a compressed JSON backup",
		Long: `Restores boilers from a backup written by 'backup'. By default only boilers
that do not exist yet are added.

With --full all existing boilers are removed before importing.
WARNING: --full is destructive and not reversible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")
			s, err := defaultStore()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("could not open file: %w", err)
			}
			defer func() { _ = f.Close() }()

			n, err := backup.Import(cmd.Context(), s, f, full)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_done", n, args[0]))
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Wipe all existing boilers before restoring")
	return cmd
}
