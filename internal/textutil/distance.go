package textutil

// MaxDistanceInput is the longest string Distance will compare. Longer
// inputs return DistanceFar immediately.
const MaxDistanceInput = 40

// DistanceFar is returned when two strings are not comparable, either
// because one exceeds MaxDistanceInput or the distance overflows any
// useful threshold.
const DistanceFar = MaxDistanceInput + 1

// Distance computes the Levenshtein edit distance between a and b,
// bounded by MaxDistanceInput. Comparison is byte-based; callers are
// expected to pass already-normalized ASCII text.
func Distance(a, b string) int {
	if len(a) > MaxDistanceInput || len(b) > MaxDistanceInput {
		return DistanceFar
	}
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
