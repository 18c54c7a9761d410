package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTokenizer(t *testing.T) {
	tok, err := NewGoTokenizer()
	require.NoError(t, err)

	tokens := tok.Tokenize(`package main

// greet prints a greeting
func greet() { println("hi", 42) }
`)

	assert.Equal(t, Go, tok.Language())
	assert.Contains(t, tokens, "func")
	assert.Contains(t, tokens, "greet")
	assert.Contains(t, tokens, "println")
	assert.Contains(t, tokens, "STR")
	assert.Contains(t, tokens, "NUM")
	assert.NotContains(t, tokens, "42")
	for _, token := range tokens {
		assert.NotContains(t, token, "greeting")
	}
}

func TestPythonTokenizer(t *testing.T) {
	tok, err := NewPythonTokenizer()
	require.NoError(t, err)

	tokens := tok.Tokenize("def add(a, b):\n    # sum\n    return a + b + 1\n")

	assert.Contains(t, tokens, "def")
	assert.Contains(t, tokens, "add")
	assert.Contains(t, tokens, "return")
	assert.Contains(t, tokens, "NUM")
	assert.NotContains(t, tokens, "# sum")
}

func TestCodeTokenizer_Empty(t *testing.T) {
	tok, err := NewJavaTokenizer()
	require.NoError(t, err)

	assert.Empty(t, tok.Tokenize(""))
}

func TestRegisterCodeTokenizers(t *testing.T) {
	registry := DefaultRegistry()
	require.NoError(t, RegisterCodeTokenizers(registry))

	assert.Equal(t, []string{Go, Java, JavaScript, Plain, Python, Stemmed, TypeScript}, registry.Names())

	tok, ok := registry.Get(TypeScript)
	require.True(t, ok)
	assert.Contains(t, tok.Tokenize("const x: number = 1;"), "const")

	tok, ok = registry.Get(JavaScript)
	require.True(t, ok)
	assert.Contains(t, tok.Tokenize("let y = 'a';"), "let")
}
