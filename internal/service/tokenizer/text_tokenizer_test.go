package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStemmedTokenizer(t *testing.T) {
	tok := NewStemmedTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "only separators", text: "!!! ---", want: nil},
		{name: "normalizes and splits", text: "Hello, WORLD!! 123", want: []string{"hello", "world", "123"}},
		{name: "stems words", text: "running runner runs", want: []string{"run", "runner", "run"}},
		{name: "nfkc normalization", text: "Ｆｏｏ Bar", want: []string{"foo", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestPlainTokenizer(t *testing.T) {
	tok := NewPlainTokenizer()

	assert.Equal(t, []string{"running", "runner", "runs"}, tok.Tokenize("Running, runner; RUNS"))
	assert.Nil(t, tok.Tokenize("   "))
	assert.Equal(t, []string{"snake_case", "x1"}, tok.Tokenize("snake_case/x1"))
}

func TestPlainTokenizer_CombiningMarks(t *testing.T) {
	tok := NewPlainTokenizer()

	// virama and vowel sign split the word
	assert.Equal(t, []string{"\u0928\u092e\u0938", "\u0924"}, tok.Tokenize("\u0928\u092e\u0938\u094d\u0924\u0947"))
	// NFKC composes e + acute into one letter first
	assert.Equal(t, []string{"caf\u00e9"}, tok.Tokenize("cafe\u0301"))
}

func TestTokenizer_Deterministic(t *testing.T) {
	tok := NewStemmedTokenizer()
	text := "The quick brown foxes jumped over the lazy dogs"

	first := tok.Tokenize(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tok.Tokenize(text))
	}
}

func TestRegistry(t *testing.T) {
	registry := DefaultRegistry()
	assert.Equal(t, []string{Plain, Stemmed}, registry.Names())

	tok, ok := registry.Get(Stemmed)
	require.True(t, ok)
	assert.Equal(t, []string{"run"}, tok.Tokenize("running"))

	_, ok = registry.Get("missing")
	assert.False(t, ok)

	registry.Register("split", Func(func(text string) []string { return []string{text} }))
	tok, ok = registry.Get("split")
	require.True(t, ok)
	assert.Equal(t, []string{"a b"}, tok.Tokenize("a b"))
}
