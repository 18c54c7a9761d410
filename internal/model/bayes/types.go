package bayes

// ClassificationResult is the winning category for a sample of text
type ClassificationResult struct {
	Category string  `json:"category"` // Empty when no category scored above zero
	Score    float64 `json:"score"`    // Score of the winning category, 0 when none
}

// Found reports whether a category was selected
func (r ClassificationResult) Found() bool {
	return r.Category != ""
}

// CategorySummary describes one trained category
type CategorySummary struct {
	TokenTally   int64   `json:"tokenTally"`   // Sum of all token counts
	ProbInCat    float64 `json:"probInCat"`    // Share of all trained tokens
	ProbNotInCat float64 `json:"probNotInCat"` // Sum of the other categories' shares
}

// TokenCounts is a histogram of token -> occurrences
type TokenCounts map[string]int64

// CountTokenOccurrences builds a histogram over a token sequence
func CountTokenOccurrences(tokens []string) TokenCounts {
	counts := make(TokenCounts, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// Total returns the number of tokens the histogram was built from
func (tc TokenCounts) Total() int64 {
	var total int64
	for _, count := range tc {
		total += count
	}
	return total
}
