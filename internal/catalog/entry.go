package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// EntryID identifies one printing/variant in the reference catalog. It is
// a distinct type so entry identifiers cannot be mixed with other strings
// at API boundaries.
type EntryID string

// Entry describes a specific printing of a card. Immutable once loaded.
type Entry struct {
	ID              EntryID `json:"id"`
	Name            string  `json:"name"`
	SetCode         string  `json:"set_code"`
	CollectorNumber string  `json:"collector_number"`
	ImageURL        string  `json:"image_url,omitempty"`
}

// Candidate is an Entry projected with the match score computed for one
// query. Ephemeral; produced per lookup.
type Candidate struct {
	Entry Entry `json:"entry"`
	Score int   `json:"score"`
}

// Query carries the normalized fields of one lookup. Limit defaults to
// DefaultLimit when zero.
type Query struct {
	Name            string
	CollectorNumber string
	SetCode         string
	Limit           int
}

// DefaultLimit bounds how many candidates a search returns when the query
// does not say otherwise.
const DefaultLimit = 3

// LoadFile reads a catalog entry list from a JSON file: a top-level array
// of Entry objects.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return entries, nil
}
