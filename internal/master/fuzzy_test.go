package master

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("Acme", "acme"))
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 0.0, similarity("abc", "xyz"))

	// one edit over five characters
	assert.InDelta(t, 0.8, similarity("acmes", "acmed"), 0.0001)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("kitten", "kitten"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 5, levenshtein("", "abcde"))
	assert.Equal(t, 5, levenshtein("abcde", ""))
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"Acme Traders", "Globex LLC", "", "Initech"}

	assert.Equal(t, "Acme Traders", bestMatch("Acme Trader", candidates, 0.6))
	assert.Equal(t, "", bestMatch("Wayne Enterprises", candidates, 0.6))
}

func TestBestMatch_CutoffIsInclusive(t *testing.T) {
	// "abcd" vs "abce" scores exactly 0.75
	assert.Equal(t, "abce", bestMatch("abcd", []string{"abce"}, 0.75))
	assert.Equal(t, "", bestMatch("abcd", []string{"abce"}, 0.76))
}
