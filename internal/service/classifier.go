package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"bayes-go/internal/model/bayes"
	"bayes-go/internal/service/tokenizer"

	"go.uber.org/zap"
)

// CategoryPattern is the set of valid category names
var CategoryPattern = regexp.MustCompile(`^[-_A-Za-z0-9]{1,64}$`)

// NormalizeCategory trims a category name and validates it against CategoryPattern
func NormalizeCategory(category string) (string, error) {
	name := strings.TrimSpace(category)
	if name == "" {
		return "", fmt.Errorf("%w: category is required", ErrInvalidCategory)
	}
	if !CategoryPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q must match %s", ErrInvalidCategory, name, CategoryPattern.String())
	}
	return name, nil
}

// Classifier is an in-memory naive-Bayes text classifier.
// A single mutex serializes every operation, so readers never observe a store
// and probability cache that disagree.
type Classifier struct {
	store     *CategoryStore
	probs     *ProbabilityCache
	tokenizer tokenizer.Tokenizer
	logger    *zap.Logger
	mu        sync.Mutex
}

// NewClassifier creates an empty classifier. A nil tokenizer selects the stemmed text tokenizer.
func NewClassifier(tok tokenizer.Tokenizer, logger *zap.Logger) *Classifier {
	if tok == nil {
		tok = tokenizer.NewStemmedTokenizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		store:     NewCategoryStore(),
		probs:     NewProbabilityCache(),
		tokenizer: tok,
		logger:    logger,
	}
}

// Train adds the tokens of text to a category, creating the category on first use
func (c *Classifier) Train(category, text string) error {
	name, err := NormalizeCategory(category)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	occurrences := bayes.CountTokenOccurrences(c.tokenizer.Tokenize(text))

	bayesCategory, err := c.store.GetCategory(name)
	if errors.Is(err, ErrCategoryNotFound) {
		bayesCategory = c.store.AddCategory(name)
		c.logger.Debug("Created category", zap.String("category", name))
	}

	for word, count := range occurrences {
		bayesCategory.TrainToken(word, count)
	}

	c.recalculateLocked()
	recordOperation("train")
	recordStore(c.store)

	c.logger.Debug("Trained category",
		zap.String("category", name),
		zap.Int("distinct_tokens", len(occurrences)),
		zap.Int64("tokens", occurrences.Total()),
		zap.Int64("tally", bayesCategory.Tally()))

	return nil
}

// Untrain removes the tokens of text from a category. Counts never drop below zero
// and a category whose tally reaches zero is removed. Unknown categories are ignored.
func (c *Classifier) Untrain(category, text string) error {
	name, err := NormalizeCategory(category)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bayesCategory, err := c.store.GetCategory(name)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil
	}

	occurrences := bayes.CountTokenOccurrences(c.tokenizer.Tokenize(text))
	for word, count := range occurrences {
		bayesCategory.UntrainToken(word, count)
	}

	if bayesCategory.Tally() == 0 {
		c.store.DeleteCategory(name)
		c.logger.Debug("Removed empty category", zap.String("category", name))
	}

	c.recalculateLocked()
	recordOperation("untrain")
	recordStore(c.store)

	c.logger.Debug("Untrained category",
		zap.String("category", name),
		zap.Int("distinct_tokens", len(occurrences)),
		zap.Int64("tokens", occurrences.Total()),
		zap.Int64("tally", bayesCategory.Tally()))

	return nil
}

// Flush drops every category
func (c *Classifier) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = NewCategoryStore()
	c.probs.Clear()
	recordOperation("flush")
	recordStore(c.store)

	c.logger.Info("Flushed classifier")
}

// Score returns the score of every category matched by text. Categories scoring zero are omitted.
func (c *Classifier) Score(text string) map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	recordOperation("score")
	return c.scoreLocked(text)
}

// Classify returns the highest scoring category, or false when nothing scored above zero.
// Ties go to the lexically smallest name.
func (c *Classifier) Classify(text string) (string, bool) {
	result := c.ClassifyResult(text)
	return result.Category, result.Found()
}

// ClassifyResult returns the highest scoring category together with its score
func (c *Classifier) ClassifyResult(text string) bayes.ClassificationResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	recordOperation("classify")
	return selectBest(c.scoreLocked(text))
}

// Tally returns the tally of a category, 0 if it is unknown
func (c *Classifier) Tally(category string) int64 {
	name, err := NormalizeCategory(category)
	if err != nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bayesCategory, err := c.store.GetCategory(name)
	if err != nil {
		return 0
	}
	return bayesCategory.Tally()
}

// Summaries returns the tally and cached priors of every category
func (c *Classifier) Summaries() map[string]bayes.CategorySummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.summariesLocked()
}

// Categories returns the category names in ascending order
func (c *Classifier) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Names()
}

func (c *Classifier) summariesLocked() map[string]bayes.CategorySummary {
	summaries := make(map[string]bayes.CategorySummary, c.store.Len())
	for name, bayesCategory := range c.store.Categories() {
		prob, _ := c.probs.Get(name)
		summaries[name] = bayes.CategorySummary{
			TokenTally:   bayesCategory.Tally(),
			ProbInCat:    prob.InCategory,
			ProbNotInCat: prob.NotInCategory,
		}
	}
	return summaries
}

func (c *Classifier) recalculateLocked() {
	c.probs.Recompute(c.store)
}

// scoreLocked compares every category against all of the others, one token at a time:
//
//	p(c|t) = count(c,t)*P(c) / (count(c,t)*P(c) + count(others,t)*P(others))
//
// and sums p(c|t) weighted by the token's occurrences in text.
func (c *Classifier) scoreLocked(text string) map[string]float64 {
	occurrences := bayes.CountTokenOccurrences(c.tokenizer.Tokenize(text))
	names := c.store.Names()
	categories := c.store.Categories()

	scores := make(map[string]float64, len(names))
	for _, name := range names {
		scores[name] = 0
	}

	words := make([]string, 0, len(occurrences))
	for word := range occurrences {
		words = append(words, word)
	}
	sort.Strings(words)

	tokenScores := make([]float64, len(names))
	for _, word := range words {
		count := occurrences[word]
		total := 0.0
		for i, name := range names {
			tokenScores[i] = float64(categories[name].TokenCount(word))
			total += tokenScores[i]
		}

		for i, name := range names {
			prob, _ := c.probs.Get(name)
			prtnc := total - tokenScores[i]
			numerator := tokenScores[i] * prob.InCategory
			denominator := numerator + prtnc*prob.NotInCategory
			if denominator == 0 {
				continue
			}
			scores[name] += float64(count) * (numerator / denominator)
		}
	}

	for name, score := range scores {
		if score <= 0 {
			delete(scores, name)
		}
	}
	return scores
}

// selectBest picks the category with the strictly highest positive score,
// visiting names in ascending order
func selectBest(scores map[string]float64) bayes.ClassificationResult {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	var result bayes.ClassificationResult
	for _, name := range names {
		if scores[name] > result.Score {
			result = bayes.ClassificationResult{Category: name, Score: scores[name]}
		}
	}
	return result
}
