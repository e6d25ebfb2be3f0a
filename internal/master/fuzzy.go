package master

import "strings"

// similarity scores two strings in [0,1] using normalized edit distance,
// case-insensitively. 1 means equal, 0 means nothing in common.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings using a
// two-row dynamic programming table.
func levenshtein(a, b string) int {
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
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// bestMatch returns the candidate most similar to target at or above cutoff,
// or "" when no candidate qualifies.
func bestMatch(target string, candidates []string, cutoff float64) string {
	best := ""
	bestScore := cutoff
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		score := similarity(target, cand)
		if score > bestScore || (score == bestScore && best == "") {
			best = cand
			bestScore = score
		}
	}
	return best
}
