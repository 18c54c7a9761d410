package service

import (
	"fmt"
	"sort"
)

// CategoryStore is the collection of trained categories keyed by name.
// It is not safe for concurrent use; the Classifier serializes access.
type CategoryStore struct {
	categories map[string]*Category
}

// NewCategoryStore creates an empty store
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]*Category),
	}
}

// AddCategory creates an empty category, replacing any existing one with the same name
func (s *CategoryStore) AddCategory(name string) *Category {
	category := NewCategory(name)
	s.categories[name] = category
	return category
}

// GetCategory returns the named category or ErrCategoryNotFound
func (s *CategoryStore) GetCategory(name string) (*Category, error) {
	category, ok := s.categories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return category, nil
}

// Categories returns the live name -> category map
func (s *CategoryStore) Categories() map[string]*Category {
	return s.categories
}

// DeleteCategory removes a category if present
func (s *CategoryStore) DeleteCategory(name string) {
	delete(s.categories, name)
}

// Names returns the category names in ascending order
func (s *CategoryStore) Names() []string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of categories
func (s *CategoryStore) Len() int {
	return len(s.categories)
}
