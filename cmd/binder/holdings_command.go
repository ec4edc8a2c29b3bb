package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"binder/internal/catalog"
	"binder/internal/config"
	"binder/internal/ledger"
	"binder/internal/ledger/store"
)

func newHoldingsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "holdings",
		Short: "Show materialized holdings from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store, _ *config.Config) error {
				holdings, err := s.Materialize(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, holdingsViews(holdings))
				}
				return renderHoldings(cmd, holdings)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

// holdingsView is the JSON projection of one entry's holdings.
type holdingsView struct {
	Entry      string         `json:"entry"`
	Total      int            `json:"total"`
	ByLocation map[string]int `json:"by_location,omitempty"`
	Condition  string         `json:"condition,omitempty"`
	Language   string         `json:"language,omitempty"`
	Note       string         `json:"note,omitempty"`
}

func holdingsViews(holdings map[catalog.EntryID]ledger.Holdings) []holdingsView {
	views := make([]holdingsView, 0, len(holdings))
	for entry, h := range holdings {
		views = append(views, holdingsView{
			Entry:      string(entry),
			Total:      h.Total,
			ByLocation: h.ByLocation,
			Condition:  h.Condition,
			Language:   h.Language,
			Note:       h.Note,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Entry < views[j].Entry })
	return views
}

func renderHoldings(cmd *cobra.Command, holdings map[catalog.EntryID]ledger.Holdings) error {
	out := cmd.OutOrStdout()
	views := holdingsViews(holdings)
	if len(views) == 0 {
		fmt.Fprintln(out, "Ledger is empty")
		return nil
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(views))
	negatives := 0
	for _, v := range views {
		total := strconv.Itoa(v.Total)
		if v.Total < 0 {
			negatives++
			if colorize {
				total = ansiRed + total + ansiReset
			}
		}
		rows = append(rows, []string{
			v.Entry,
			total,
			formatLocations(v.ByLocation),
			v.Condition,
			v.Language,
			v.Note,
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Entry", "Total", "Locations", "Condition", "Language", "Note"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	if negatives > 0 {
		fmt.Fprintf(out, "%d entries have negative totals; the event log is missing adds (partial sync)\n", negatives)
	}
	return nil
}

func formatLocations(byLocation map[string]int) string {
	if len(byLocation) == 0 {
		return ""
	}
	labels := make([]string, 0, len(byLocation))
	for label := range byLocation {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%s=%d", label, byLocation[label]))
	}
	return strings.Join(parts, ", ")
}
