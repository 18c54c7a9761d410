package tokenizer

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Registry names of the source code tokenizers
const (
	Go         = "go"
	Java       = "java"
	JavaScript = "javascript"
	TypeScript = "typescript"
	Python     = "python"
)

// CodeTokenizer tokenizes source code with a tree-sitter grammar.
// Leaf nodes become tokens, comments are dropped and literals collapse to a
// placeholder such as NUM or STR so that samples share vocabulary.
type CodeTokenizer struct {
	mu       sync.Mutex // tree-sitter parsers are not safe for concurrent use
	parser   *tree_sitter.Parser
	language string
	comments map[string]bool
	literals map[string]string
}

func newCodeTokenizer(name string, grammar *tree_sitter.Language, comments []string, literals map[string]string) (*CodeTokenizer, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", name, err)
	}

	commentKinds := make(map[string]bool, len(comments))
	for _, kind := range comments {
		commentKinds[kind] = true
	}
	return &CodeTokenizer{
		parser:   parser,
		language: name,
		comments: commentKinds,
		literals: literals,
	}, nil
}

func NewGoTokenizer() (*CodeTokenizer, error) {
	return newCodeTokenizer(Go, tree_sitter.NewLanguage(golang.Language()),
		[]string{"comment"},
		map[string]string{
			"int_literal":                "NUM",
			"float_literal":              "NUM",
			"imaginary_literal":          "NUM",
			"raw_string_literal":         "STR",
			"interpreted_string_literal": "STR",
			"rune_literal":               "CHAR",
		})
}

func NewJavaTokenizer() (*CodeTokenizer, error) {
	return newCodeTokenizer(Java, tree_sitter.NewLanguage(java.Language()),
		[]string{"comment", "line_comment", "block_comment"},
		map[string]string{
			"decimal_integer_literal":        "NUM",
			"hex_integer_literal":            "NUM",
			"octal_integer_literal":          "NUM",
			"binary_integer_literal":         "NUM",
			"decimal_floating_point_literal": "NUM",
			"hex_floating_point_literal":     "NUM",
			"string_literal":                 "STR",
			"character_literal":              "STR",
		})
}

func NewJavaScriptTokenizer() (*CodeTokenizer, error) {
	return newCodeTokenizer(JavaScript, tree_sitter.NewLanguage(javascript.Language()),
		[]string{"comment"},
		map[string]string{
			"number":          "NUM",
			"string_fragment": "STR",
			"regex_pattern":   "REGEX",
		})
}

func NewTypeScriptTokenizer() (*CodeTokenizer, error) {
	return newCodeTokenizer(TypeScript, tree_sitter.NewLanguage(typescript.LanguageTypescript()),
		[]string{"comment"},
		map[string]string{
			"number":          "NUM",
			"string_fragment": "STR",
			"regex_pattern":   "REGEX",
		})
}

func NewPythonTokenizer() (*CodeTokenizer, error) {
	return newCodeTokenizer(Python, tree_sitter.NewLanguage(python.Language()),
		[]string{"comment"},
		map[string]string{
			"integer":        "NUM",
			"float":          "NUM",
			"string_content": "STR",
		})
}

// Language returns the registry name of the grammar
func (t *CodeTokenizer) Language() string {
	return t.language
}

// Tokenize returns the leaf tokens of text in source order. Unparseable input yields no tokens.
func (t *CodeTokenizer) Tokenize(text string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	source := []byte(text)
	tree := t.parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var tokens []string
	t.traverseNode(tree.RootNode(), source, &tokens)
	return tokens
}

func (t *CodeTokenizer) traverseNode(node *tree_sitter.Node, source []byte, tokens *[]string) {
	if node == nil {
		return
	}

	kind := node.Kind()
	if t.comments[kind] {
		return
	}
	if placeholder, ok := t.literals[kind]; ok {
		*tokens = append(*tokens, placeholder)
		return
	}

	if node.ChildCount() == 0 {
		if content := node.Utf8Text(source); content != "" {
			*tokens = append(*tokens, content)
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		t.traverseNode(node.Child(i), source, tokens)
	}
}

// RegisterCodeTokenizers adds a tokenizer for every supported programming language
func RegisterCodeTokenizers(registry *Registry) error {
	constructors := []func() (*CodeTokenizer, error){
		NewGoTokenizer,
		NewJavaTokenizer,
		NewJavaScriptTokenizer,
		NewTypeScriptTokenizer,
		NewPythonTokenizer,
	}
	for _, newTokenizer := range constructors {
		tok, err := newTokenizer()
		if err != nil {
			return err
		}
		registry.Register(tok.Language(), tok)
	}
	return nil
}
