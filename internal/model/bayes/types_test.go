package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTokenOccurrences(t *testing.T) {
	counts := CountTokenOccurrences([]string{"hello", "world", "hello"})

	assert.Equal(t, TokenCounts{"hello": 2, "world": 1}, counts)
	assert.Equal(t, int64(3), counts.Total())
}

func TestCountTokenOccurrences_Empty(t *testing.T) {
	counts := CountTokenOccurrences(nil)

	assert.Empty(t, counts)
	assert.Zero(t, counts.Total())
}

func TestClassificationResult_Found(t *testing.T) {
	assert.True(t, ClassificationResult{Category: "spam", Score: 2.5}.Found())
	assert.False(t, ClassificationResult{}.Found())
}
