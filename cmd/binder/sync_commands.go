package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"binder/internal/config"
	"binder/internal/ledger"
	"binder/internal/ledger/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full event log as a sync batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				events, err := s.Events(cmd.Context())
				if err != nil {
					return err
				}
				payload, err := ledger.EncodeBatch(events)
				if err != nil {
					return err
				}

				target := strings.TrimSpace(outputPath)
				if target == "" {
					_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
					return err
				}
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := os.WriteFile(expanded, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(events), expanded)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default: stdout)")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Merge a sync batch into the local event log",
		Long: `Merge an exported event batch into the local ledger. Events already
present locally are skipped by id, so importing the same batch twice is
harmless.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 1 {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve import path: %w", err)
				}
				data, err = os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read import file: %w", err)
				}
			} else {
				var err error
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			events, err := ledger.DecodeBatch(data)
			if err != nil {
				return err
			}

			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				added, err := s.AppendBatch(cmd.Context(), events)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new events (%d duplicates skipped)\n",
					added, len(events)-added)
				return nil
			})
		},
	}

	return cmd
}
