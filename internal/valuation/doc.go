// Package valuation combines materialized holdings with externally
// supplied price points into a portfolio report.
//
// Prices arrive from a collaborator (market data is out of scope here);
// this package only multiplies them against quantities. Negative totals
// from incomplete sync flow straight through as negative value; hiding
// them would mask the sync gap.
package valuation
