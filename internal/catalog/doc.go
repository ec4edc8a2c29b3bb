// Package catalog defines the reference-catalog contract and a full-scan
// in-memory index for ranking entries against a normalized scan query.
//
// The Index interface is the seam integrators swap: MemoryIndex scans a
// client-side entry list (fine for catalogs in the tens of thousands), while
// catalog/remote satisfies the same contract against an HTTP search service.
// A trigram or prefix index can replace either without touching callers.
//
// Ranking is additive and deliberately stable: two entries with the same
// score keep their input order, so catalog load order is part of the
// observable contract.
package catalog
