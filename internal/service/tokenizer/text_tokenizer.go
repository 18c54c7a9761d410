package tokenizer

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"
)

// TextTokenizer splits natural-language text into lowercase word tokens,
// optionally reduced to their English Snowball stems
type TextTokenizer struct {
	stem bool
}

// NewStemmedTokenizer creates the default tokenizer: NFKC, lowercase, split, stem
func NewStemmedTokenizer() *TextTokenizer {
	return &TextTokenizer{stem: true}
}

// NewPlainTokenizer creates a tokenizer that normalizes and splits without stemming
func NewPlainTokenizer() *TextTokenizer {
	return &TextTokenizer{stem: false}
}

// Tokenize converts text into an ordered token sequence.
// The result depends only on the input text.
func (t *TextTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := strings.ToLower(norm.NFKC.String(text))
	words := strings.FieldsFunc(normalized, isSeparator)
	if len(words) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if t.stem {
			word = english.Stem(word, true)
		}
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// isSeparator reports whether r is outside the word character class (letters, numbers, underscore).
// Combining marks separate words.
func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
}
