package tokenizer

import "sort"

const (
	// Stemmed is the registry name of the default stemming tokenizer
	Stemmed = "stemmed"
	// Plain is the registry name of the non-stemming tokenizer
	Plain = "plain"
)

// Tokenizer converts text into an ordered sequence of tokens.
// Implementations must be deterministic and free of side effects.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Func adapts a plain function to the Tokenizer interface
type Func func(text string) []string

// Tokenize calls f(text)
func (f Func) Tokenize(text string) []string {
	return f(text)
}

// Registry manages named tokenizers
type Registry struct {
	tokenizers map[string]Tokenizer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tokenizers: make(map[string]Tokenizer),
	}
}

// DefaultRegistry returns a registry holding the stemmed and plain tokenizers
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(Stemmed, NewStemmedTokenizer())
	registry.Register(Plain, NewPlainTokenizer())
	return registry
}

// Register adds a tokenizer under a name, replacing any previous one
func (r *Registry) Register(name string, tokenizer Tokenizer) {
	r.tokenizers[name] = tokenizer
}

// Get returns the tokenizer registered under name
func (r *Registry) Get(name string) (Tokenizer, bool) {
	tokenizer, ok := r.tokenizers[name]
	return tokenizer, ok
}

// Names returns the registered names in ascending order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tokenizers))
	for name := range r.tokenizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
