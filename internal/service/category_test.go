package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_TrainToken(t *testing.T) {
	category := NewCategory("foo")
	category.TrainToken("hello", 2)
	category.TrainToken("world", 1)
	category.TrainToken("hello", 3)

	assert.Equal(t, "foo", category.Name())
	assert.Equal(t, int64(5), category.TokenCount("hello"))
	assert.Equal(t, int64(1), category.TokenCount("world"))
	assert.Equal(t, int64(6), category.Tally())
}

func TestCategory_UntrainToken(t *testing.T) {
	category := NewCategory("foo")
	category.TrainToken("hello", 5)
	category.TrainToken("world", 1)

	category.UntrainToken("hello", 2)
	assert.Equal(t, int64(3), category.TokenCount("hello"))
	assert.Equal(t, int64(4), category.Tally())

	// unknown tokens are ignored
	category.UntrainToken("missing", 10)
	assert.Equal(t, int64(4), category.Tally())
}

func TestCategory_UntrainTokenClampsAtZero(t *testing.T) {
	category := NewCategory("foo")
	category.TrainToken("hello", 2)
	category.TrainToken("world", 1)

	category.UntrainToken("hello", 100)

	assert.Zero(t, category.TokenCount("hello"))
	assert.Equal(t, int64(1), category.Tally())
	assert.Equal(t, map[string]int64{"world": 1}, category.Tokens())
}

func TestCategory_TokenCountUnknown(t *testing.T) {
	assert.Zero(t, NewCategory("foo").TokenCount("nothing"))
}

func TestCategory_TokensIsACopy(t *testing.T) {
	category := NewCategory("foo")
	category.TrainToken("hello", 1)

	tokens := category.Tokens()
	tokens["hello"] = 100

	assert.Equal(t, int64(1), category.TokenCount("hello"))
}

func TestCategory_TallyMatchesTokenSum(t *testing.T) {
	category := NewCategory("foo")
	steps := []struct {
		word    string
		count   int64
		untrain bool
	}{
		{"a", 3, false}, {"b", 2, false}, {"a", 1, true}, {"c", 7, false},
		{"b", 9, true}, {"a", 2, true}, {"c", 1, true}, {"d", 1, true},
	}

	for _, step := range steps {
		if step.untrain {
			category.UntrainToken(step.word, step.count)
		} else {
			category.TrainToken(step.word, step.count)
		}

		var sum int64
		for _, count := range category.Tokens() {
			assert.Positive(t, count)
			sum += count
		}
		assert.Equal(t, sum, category.Tally())
	}
}
