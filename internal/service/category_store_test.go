package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryStore_AddAndGet(t *testing.T) {
	store := NewCategoryStore()
	added := store.AddCategory("foo")

	got, err := store.GetCategory("foo")
	require.NoError(t, err)
	assert.Same(t, added, got)
	assert.Equal(t, 1, store.Len())
}

func TestCategoryStore_GetMissing(t *testing.T) {
	store := NewCategoryStore()

	_, err := store.GetCategory("missing")
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestCategoryStore_AddOverwrites(t *testing.T) {
	store := NewCategoryStore()
	store.AddCategory("foo").TrainToken("hello", 1)

	store.AddCategory("foo")

	got, err := store.GetCategory("foo")
	require.NoError(t, err)
	assert.Zero(t, got.Tally())
}

func TestCategoryStore_DeleteAndNames(t *testing.T) {
	store := NewCategoryStore()
	store.AddCategory("gamma")
	store.AddCategory("alpha")
	store.AddCategory("beta")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, store.Names())

	store.DeleteCategory("beta")
	store.DeleteCategory("missing")

	assert.Equal(t, []string{"alpha", "gamma"}, store.Names())
	assert.Len(t, store.Categories(), 2)
}
