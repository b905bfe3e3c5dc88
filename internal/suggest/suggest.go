// Package suggest proposes "did you mean" replacements for unrecognized
// cfg condition names.
package suggest

// Suggest returns the pool entry closest to candidate by edit distance.
// A match is accepted only when its distance is at most one third of the
// candidate's length (minimum 1), and when it is more similar than an
// arbitrary unrelated string: `widnows` suggests `windows`, `xxx` suggests
// nothing. Ties are broken by pool order, first minimal match wins, so the
// result is deterministic for a stable pool.
func Suggest(candidate string, pool []string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	limit := len(candidate) / 3
	if limit < 1 {
		limit = 1
	}

	best := ""
	bestDist := -1
	for _, name := range pool {
		d := editDistance(candidate, name)
		if bestDist == -1 || d < bestDist {
			best = name
			bestDist = d
		}
	}

	if bestDist == -1 || bestDist > limit || bestDist >= len(candidate) {
		return "", false
	}
	return best, true
}

// editDistance is the classic Levenshtein distance: unit-cost insertions,
// deletions and substitutions. Two rows of the DP table are enough.
func editDistance(a, b string) int {
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
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
