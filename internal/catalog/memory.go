package catalog

import (
	"context"
	"sort"
	"strings"

	"binder/internal/textutil"
)

// Match score weights. Calibration values; the exact-everything ceiling is
// scoreNameExact+scoreNumberExact+scoreSetExact = 100.
const (
	scoreNameExact     = 60
	scoreNamePrefix    = 40
	scoreNameSubstring = 25
	scoreNameNearBase  = 35
	scoreNameNearStep  = 10
	scoreNameLoose     = 10
	nearDistanceMax    = 2
	looseDistanceMax   = 4
	scoreNumberExact   = 25
	scoreSetExact      = 15
)

// MemoryIndex ranks entries with a full scan per query. Entries are held
// in load order, which doubles as the tie-break order.
type MemoryIndex struct {
	entries []Entry
}

var _ Index = (*MemoryIndex)(nil)

// NewMemoryIndex builds an index over the supplied entries. The slice is
// copied; later mutation of the argument does not affect the index.
func NewMemoryIndex(entries []Entry) *MemoryIndex {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &MemoryIndex{entries: copied}
}

// Len reports how many entries the index holds.
func (m *MemoryIndex) Len() int { return len(m.entries) }

// Search scores every entry against the query, drops zero scores, and
// returns the top candidates in descending score order. Ties keep entry
// load order (stable sort).
func (m *MemoryIndex) Search(ctx context.Context, query Query) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryName := strings.ToLower(strings.TrimSpace(query.Name))
	queryNumber := strings.ToLower(strings.TrimSpace(query.CollectorNumber))
	querySet := strings.ToLower(strings.TrimSpace(query.SetCode))

	candidates := make([]Candidate, 0, limit)
	for _, entry := range m.entries {
		score := scoreEntry(entry, queryName, queryNumber, querySet)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{Entry: entry, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func scoreEntry(entry Entry, queryName, queryNumber, querySet string) int {
	score := scoreName(strings.ToLower(entry.Name), queryName)

	if queryNumber != "" && strings.EqualFold(entry.CollectorNumber, queryNumber) {
		score += scoreNumberExact
	}
	if querySet != "" && strings.EqualFold(entry.SetCode, querySet) {
		score += scoreSetExact
	}
	return score
}

func scoreName(entryName, queryName string) int {
	if queryName == "" || entryName == "" {
		return 0
	}
	if entryName == queryName {
		return scoreNameExact
	}
	if strings.HasPrefix(entryName, queryName) {
		return scoreNamePrefix
	}
	if strings.Contains(entryName, queryName) {
		return scoreNameSubstring
	}

	distance := textutil.Distance(entryName, queryName)
	switch {
	case distance <= nearDistanceMax:
		return scoreNameNearBase - scoreNameNearStep*distance
	case distance <= looseDistanceMax:
		return scoreNameLoose
	default:
		return 0
	}
}
