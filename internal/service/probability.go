package service

// CategoryProbability holds the cached priors for one category
type CategoryProbability struct {
	InCategory    float64 // tally / total tally
	NotInCategory float64 // sum of the other categories' InCategory
}

// ProbabilityCache holds priors derived from the current category tallies
type ProbabilityCache struct {
	probabilities map[string]CategoryProbability
}

// NewProbabilityCache creates an empty cache
func NewProbabilityCache() *ProbabilityCache {
	return &ProbabilityCache{
		probabilities: make(map[string]CategoryProbability),
	}
}

// Recompute rebuilds every entry from the store's tallies.
// Sums run in category name order so results are reproducible.
func (p *ProbabilityCache) Recompute(store *CategoryStore) {
	names := store.Names()
	categories := store.Categories()

	var total int64
	for _, name := range names {
		total += categories[name].Tally()
	}

	inCategory := make(map[string]float64, len(names))
	sum := 0.0
	for _, name := range names {
		prc := 0.0
		if total > 0 {
			prc = float64(categories[name].Tally()) / float64(total)
		}
		inCategory[name] = prc
		sum += prc
	}

	probabilities := make(map[string]CategoryProbability, len(names))
	for _, name := range names {
		probabilities[name] = CategoryProbability{
			InCategory:    inCategory[name],
			NotInCategory: sum - inCategory[name],
		}
	}
	p.probabilities = probabilities
}

// Get returns the cached priors for a category
func (p *ProbabilityCache) Get(name string) (CategoryProbability, bool) {
	prob, ok := p.probabilities[name]
	return prob, ok
}

// Clear drops every entry
func (p *ProbabilityCache) Clear() {
	p.probabilities = make(map[string]CategoryProbability)
}

// Len returns the number of cached entries
func (p *ProbabilityCache) Len() int {
	return len(p.probabilities)
}
