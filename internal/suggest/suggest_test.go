package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	t.Parallel()
	pool := []string{"windows", "unix", "test"}

	tests := []struct {
		name      string
		candidate string
		want      string
		found     bool
	}{
		{"close transposition", "widnows", "windows", true},
		{"single substitution", "unux", "unix", true},
		{"unrelated string", "xxx", "", false},
		{"exact match", "test", "test", true},
		{"empty candidate", "", "", false},
		{"short near miss", "tost", "test", true},
		{"too far for short name", "uz", "", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Suggest(tc.candidate, pool)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSuggestTieBreak(t *testing.T) {
	t.Parallel()
	// Both entries sit at distance 1; the first minimal match wins.
	got, ok := Suggest("feat", []string{"fead", "feab"})
	assert.True(t, ok)
	assert.Equal(t, "fead", got)

	got, ok = Suggest("feat", []string{"feab", "fead"})
	assert.True(t, ok)
	assert.Equal(t, "feab", got)
}

func TestSuggestEmptyPool(t *testing.T) {
	t.Parallel()
	_, ok := Suggest("anything", nil)
	assert.False(t, ok)
}

func TestEditDistance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"widnows", "windows", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tc := range tests {
		tc := tc
		assert.Equal(t, tc.want, editDistance(tc.a, tc.b), "editDistance(%q, %q)", tc.a, tc.b)
	}
}
