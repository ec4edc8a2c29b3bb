package valuation

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"binder/internal/catalog"
	"binder/internal/ledger"
)

// Line is the valued position for one catalog entry.
type Line struct {
	Entry    catalog.EntryID
	Quantity int
	Unit     decimal.Decimal
	Value    decimal.Decimal
}

// Report is a priced snapshot of the whole collection.
type Report struct {
	Lines []Line
	Total decimal.Decimal
	// Unpriced lists held entries with no supplied price point, so the
	// caller can show them instead of silently valuing them at zero.
	Unpriced []catalog.EntryID
}

// Value prices holdings against per-entry price points. Lines and the
// unpriced list are sorted by entry id for deterministic output.
func Value(holdings map[catalog.EntryID]ledger.Holdings, prices map[catalog.EntryID]decimal.Decimal) Report {
	report := Report{Total: decimal.Zero}

	for entry, h := range holdings {
		if h.Total == 0 {
			continue
		}
		unit, priced := prices[entry]
		if !priced {
			report.Unpriced = append(report.Unpriced, entry)
			continue
		}
		value := unit.Mul(decimal.NewFromInt(int64(h.Total)))
		report.Lines = append(report.Lines, Line{
			Entry:    entry,
			Quantity: h.Total,
			Unit:     unit,
			Value:    value,
		})
		report.Total = report.Total.Add(value)
	}

	sort.Slice(report.Lines, func(i, j int) bool {
		return report.Lines[i].Entry < report.Lines[j].Entry
	})
	sort.Slice(report.Unpriced, func(i, j int) bool {
		return report.Unpriced[i] < report.Unpriced[j]
	})
	return report
}

// LoadPrices parses a price-point map from JSON: entry id to decimal
// string, e.g. {"bolt-m21": "1.45"}.
func LoadPrices(data []byte) (map[catalog.EntryID]decimal.Decimal, error) {
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}
	prices := make(map[catalog.EntryID]decimal.Decimal, len(raw))
	for entry, amount := range raw {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse price for %s: %w", entry, err)
		}
		prices[catalog.EntryID(entry)] = d
	}
	return prices, nil
}
