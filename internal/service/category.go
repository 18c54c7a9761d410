package service

// Category holds the token counts trained for one label
type Category struct {
	name   string
	tokens map[string]int64 // token -> count, every count > 0
	tally  int64            // sum of all counts
}

// NewCategory creates an empty category
func NewCategory(name string) *Category {
	return &Category{
		name:   name,
		tokens: make(map[string]int64),
	}
}

// Name returns the category name
func (c *Category) Name() string {
	return c.name
}

// TrainToken increases the count of a token by count
func (c *Category) TrainToken(word string, count int64) {
	c.tokens[word] += count
	c.tally += count
}

// UntrainToken decreases the count of a token, never below zero.
// Unknown tokens are ignored.
func (c *Category) UntrainToken(word string, count int64) {
	current, ok := c.tokens[word]
	if !ok {
		return
	}

	count = min(count, current)
	if current-count == 0 {
		delete(c.tokens, word)
	} else {
		c.tokens[word] = current - count
	}
	c.tally -= count
}

// TokenCount returns the count of a token, 0 if it was never trained
func (c *Category) TokenCount(word string) int64 {
	return c.tokens[word]
}

// Tally returns the sum of all token counts
func (c *Category) Tally() int64 {
	return c.tally
}

// Tokens returns a copy of the token counts
func (c *Category) Tokens() map[string]int64 {
	tokens := make(map[string]int64, len(c.tokens))
	for word, count := range c.tokens {
		tokens[word] = count
	}
	return tokens
}
