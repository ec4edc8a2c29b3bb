package catalog

import "context"

// Index ranks catalog entries against a normalized query, best first,
// truncated to the query limit. An empty result is a valid "no match"
// answer, not an error; errors are reserved for lookup failures such as
// an unreachable remote index.
type Index interface {
	Search(ctx context.Context, query Query) ([]Candidate, error)
}
