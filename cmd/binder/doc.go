// Command binder is the CLI for the card scanner core: it feeds OCR
// frame readings through the scan gate and identification pipeline,
// records ledger events, and reports materialized holdings.
package main
