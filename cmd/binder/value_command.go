package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"binder/internal/config"
	"binder/internal/ledger/store"
	"binder/internal/valuation"
)

func newValueCommand(ctx *commandContext) *cobra.Command {
	var pricesPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Price the collection against a price-point file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(pricesPath)
			if err != nil {
				return fmt.Errorf("resolve prices path: %w", err)
			}
			if path == "" {
				return fmt.Errorf("--prices file is required")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read prices file: %w", err)
			}
			prices, err := valuation.LoadPrices(data)
			if err != nil {
				return err
			}

			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				holdings, err := s.Materialize(cmd.Context())
				if err != nil {
					return err
				}
				report := valuation.Value(holdings, prices)
				if asJSON {
					return writeJSON(cmd, report)
				}
				return renderValueReport(cmd, report)
			})
		},
	}

	cmd.Flags().StringVar(&pricesPath, "prices", "", "JSON file mapping entry ids to decimal prices")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func renderValueReport(cmd *cobra.Command, report valuation.Report) error {
	out := cmd.OutOrStdout()
	if len(report.Lines) == 0 && len(report.Unpriced) == 0 {
		fmt.Fprintln(out, "Nothing to value; ledger is empty")
		return nil
	}

	rows := make([][]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		rows = append(rows, []string{
			string(line.Entry),
			strconv.Itoa(line.Quantity),
			line.Unit.StringFixed(2),
			line.Value.StringFixed(2),
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Entry", "Qty", "Unit", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	))
	fmt.Fprintf(out, "Total: %s\n", report.Total.StringFixed(2))
	if len(report.Unpriced) > 0 {
		fmt.Fprintf(out, "Unpriced entries (%d):\n", len(report.Unpriced))
		for _, entry := range report.Unpriced {
			fmt.Fprintf(out, "  %s\n", entry)
		}
	}
	return nil
}
