package service

import (
	"testing"

	"wordbook/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestPickDistractors(t *testing.T) {
	tests := []struct {
		name        string
		pool        []string
		correct     string
		k           int
		exclude     []string
		expectedLen int
		expected    []string
	}{
		{
			name:        "samples exactly k",
			pool:        []string{"a", "b", "c", "d", "e", "f"},
			correct:     "a",
			k:           3,
			expectedLen: 3,
		},
		{
			name:        "fewer candidates than k returns all in order",
			pool:        []string{"x", "correct", "y", "x", "correct"},
			correct:     "correct",
			k:           3,
			expectedLen: 2,
			expected:    []string{"x", "y"},
		},
		{
			name:        "exactly k candidates",
			pool:        []string{"b", "c", "d", "a"},
			correct:     "a",
			k:           3,
			expectedLen: 3,
			expected:    []string{"b", "c", "d"},
		},
		{
			name:        "exclude removes already chosen",
			pool:        []string{"a", "b", "c", "d"},
			correct:     "a",
			k:           3,
			exclude:     []string{"b"},
			expectedLen: 2,
			expected:    []string{"c", "d"},
		},
		{
			name:        "empty pool",
			pool:        nil,
			correct:     "a",
			k:           3,
			expectedLen: 0,
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickDistractors(testutil.NewTestRand(), tt.pool, tt.correct, tt.k, tt.exclude...)

			assert.Len(t, got, tt.expectedLen)
			if tt.expected != nil {
				assert.Equal(t, tt.expected, got)
			}
			assert.NotContains(t, got, tt.correct)
		})
	}
}

func TestPickDistractors_NeverDuplicates(t *testing.T) {
	rng := testutil.NewTestRand()
	pool := []string{"a", "b", "b", "c", "c", "c", "d", "e", "e", "f"}

	for i := 0; i < 200; i++ {
		got := PickDistractors(rng, pool, "a", 3)

		assert.Len(t, got, 3)
		assert.NotContains(t, got, "a")
		seen := make(map[string]bool)
		for _, g := range got {
			assert.False(t, seen[g], "duplicate %s", g)
			seen[g] = true
		}
	}
}

func TestPickDistractors_CoversAllCandidates(t *testing.T) {
	rng := testutil.NewTestRand()
	pool := []string{"b", "c", "d", "e", "f"}
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		for _, g := range PickDistractors(rng, pool, "a", 3) {
			seen[g] = true
		}
	}

	assert.Len(t, seen, len(pool))
}

func TestShuffleOptions(t *testing.T) {
	rng := testutil.NewTestRand()

	for i := 0; i < 50; i++ {
		options, correct := shuffleOptions(rng, []string{"b", "c", "d"}, "a")

		assert.Len(t, options, 4)
		assert.Equal(t, "a", options[correct])
		assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, options)
	}
}
