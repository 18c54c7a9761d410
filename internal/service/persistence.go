package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// PersistedModelVersion is the schema version written by Save and accepted by Load
	PersistedModelVersion = 1

	// DefaultModelPath is used when no model path is configured
	DefaultModelPath = "/tmp/simplebayes-model.json"
)

// ModelState is the persisted representation of a classifier
type ModelState struct {
	Version    int                      `json:"version"`
	Categories map[string]CategoryState `json:"categories"`
}

// CategoryState is the persisted representation of one category
type CategoryState struct {
	Tally  int64            `json:"tally"`
	Tokens map[string]int64 `json:"tokens"`
}

// persistedCategory distinguishes missing fields from zero values while decoding
type persistedCategory struct {
	Tally  *int64           `json:"tally"`
	Tokens map[string]int64 `json:"tokens"`
}

// ResolveModelPath returns DefaultModelPath for an empty path and rejects relative paths
func ResolveModelPath(path string) (string, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = DefaultModelPath
	}
	if !filepath.IsAbs(resolved) {
		return "", fmt.Errorf("%w: model file path must be absolute: %s", ErrPersistencePath, resolved)
	}
	return resolved, nil
}

// EncodeModelState writes state as JSON
func EncodeModelState(w io.Writer, state *ModelState) error {
	if w == nil {
		return fmt.Errorf("%w: destination stream is required", ErrInvalidModelState)
	}
	if state == nil {
		return fmt.Errorf("%w: model state is required", ErrInvalidModelState)
	}
	return json.NewEncoder(w).Encode(state)
}

// DecodeModelState reads and validates a persisted model
func DecodeModelState(r io.Reader) (*ModelState, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: source stream is required", ErrInvalidModelState)
	}

	var root map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: unable to decode persisted model: %v", ErrInvalidModelState, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: persisted model root must be an object", ErrInvalidModelState)
	}

	var version int
	if err := json.Unmarshal(root["version"], &version); err != nil || version != PersistedModelVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModelVersion, strings.TrimSpace(string(root["version"])))
	}

	var rawCategories map[string]json.RawMessage
	if err := json.Unmarshal(root["categories"], &rawCategories); err != nil || rawCategories == nil {
		return nil, fmt.Errorf("%w: persisted categories must be an object", ErrInvalidModelState)
	}

	state := &ModelState{
		Version:    version,
		Categories: make(map[string]CategoryState, len(rawCategories)),
	}
	for name, raw := range rawCategories {
		if !CategoryPattern.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid category name in persisted model", ErrInvalidModelState)
		}

		var category persistedCategory
		if err := json.Unmarshal(raw, &category); err != nil {
			return nil, fmt.Errorf("%w: invalid category payload in persisted model", ErrInvalidModelState)
		}
		if category.Tally == nil {
			return nil, fmt.Errorf("%w: invalid category tally in persisted model", ErrInvalidModelState)
		}
		if category.Tokens == nil {
			return nil, fmt.Errorf("%w: invalid token map in persisted model", ErrInvalidModelState)
		}

		state.Categories[name] = CategoryState{
			Tally:  *category.Tally,
			Tokens: category.Tokens,
		}
	}

	if err := ValidateModelState(state); err != nil {
		return nil, err
	}
	return state, nil
}

// ValidateModelState checks the version, category names, and that every
// tally equals the sum of its positive token counts
func ValidateModelState(state *ModelState) error {
	if state == nil {
		return fmt.Errorf("%w: model state is required", ErrInvalidModelState)
	}
	if state.Version != PersistedModelVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedModelVersion, state.Version)
	}
	if state.Categories == nil {
		return fmt.Errorf("%w: persisted categories must be an object", ErrInvalidModelState)
	}

	for name, category := range state.Categories {
		if !CategoryPattern.MatchString(name) {
			return fmt.Errorf("%w: invalid category name in persisted model", ErrInvalidModelState)
		}
		if category.Tally < 0 {
			return fmt.Errorf("%w: invalid category tally in persisted model", ErrInvalidModelState)
		}
		if category.Tokens == nil {
			return fmt.Errorf("%w: invalid token map in persisted model", ErrInvalidModelState)
		}

		var sum int64
		for token, count := range category.Tokens {
			if token == "" {
				return fmt.Errorf("%w: invalid token name in persisted model", ErrInvalidModelState)
			}
			if count <= 0 {
				return fmt.Errorf("%w: invalid token count in persisted model", ErrInvalidModelState)
			}
			sum += count
		}
		if sum != category.Tally {
			return fmt.Errorf("%w: token tally mismatch in persisted model", ErrInvalidModelState)
		}
	}
	return nil
}

// Save writes the current categories to w
func (c *Classifier) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return EncodeModelState(w, c.snapshotLocked())
}

// Load replaces the current categories with the model read from r.
// The live state is untouched if the model is invalid.
func (c *Classifier) Load(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked(r)
}

// SaveToFile atomically writes the current categories to path
func (c *Classifier) SaveToFile(path string) error {
	resolved, err := ResolveModelPath(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.snapshotLocked()
	if err := writeFileAtomic(resolved, func(w io.Writer) error {
		return EncodeModelState(w, state)
	}); err != nil {
		return fmt.Errorf("failed to save model to %s: %w", resolved, err)
	}

	c.logger.Info("Saved classifier model",
		zap.String("path", resolved),
		zap.Int("categories", len(state.Categories)))
	return nil
}

// LoadFromFile replaces the current categories with the model stored at path
func (c *Classifier) LoadFromFile(path string) error {
	resolved, err := ResolveModelPath(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(resolved)
	if err != nil {
		return fmt.Errorf("failed to open model %s: %w", resolved, err)
	}
	defer file.Close()

	if err := c.loadLocked(file); err != nil {
		return err
	}

	c.logger.Info("Loaded classifier model",
		zap.String("path", resolved),
		zap.Int("categories", c.store.Len()))
	return nil
}

func (c *Classifier) loadLocked(r io.Reader) error {
	state, err := DecodeModelState(r)
	if err != nil {
		return err
	}

	store := NewCategoryStore()
	for name, categoryState := range state.Categories {
		category := store.AddCategory(name)
		for token, count := range categoryState.Tokens {
			category.TrainToken(token, count)
		}
	}

	c.store = store
	c.recalculateLocked()
	recordOperation("load")
	recordStore(c.store)
	return nil
}

func (c *Classifier) snapshotLocked() *ModelState {
	state := &ModelState{
		Version:    PersistedModelVersion,
		Categories: make(map[string]CategoryState, c.store.Len()),
	}
	for name, category := range c.store.Categories() {
		state.Categories[name] = CategoryState{
			Tally:  category.Tally(),
			Tokens: category.Tokens(),
		}
	}
	return state
}

// writeFileAtomic writes to a temp file next to path, fsyncs it and renames it over path.
// The temp file is removed on failure.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".simplebayes-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
