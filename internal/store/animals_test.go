// internal/store/animals_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"
)

func TestAnimals_RegisterAndGet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	animal := models.AnimalRef{ID: "goat-1", Species: "goat", Breed: "boer", CurrentWeight: 72}
	require.NoError(t, store.RegisterAnimal(ctx, "student-1", animal))

	got, err := store.GetAnimal(ctx, "goat-1")
	require.NoError(t, err)
	assert.Equal(t, animal, got)
}

func TestAnimals_GetUnknownIsNotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.GetAnimal(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.AsStandardError(err).Code)
}

func TestAnimals_ListSortedByID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"goat-2", "goat-1", "goat-3"} {
		require.NoError(t, store.RegisterAnimal(ctx, "student-1", models.AnimalRef{ID: id, Species: "goat"}))
	}

	animals, err := store.ListAnimals(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, animals, 3)
	assert.Equal(t, "goat-1", animals[0].ID)
	assert.Equal(t, "goat-3", animals[2].ID)
}

func TestAnimals_ListUnknownUserIsEmpty(t *testing.T) {
	store := createTestStore(t)

	animals, err := store.ListAnimals(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, animals)
}

func TestAnimals_RegisterIsUpsert(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RegisterAnimal(ctx, "student-1", models.AnimalRef{ID: "goat-1", CurrentWeight: 60}))
	require.NoError(t, store.RegisterAnimal(ctx, "student-1", models.AnimalRef{ID: "goat-1", CurrentWeight: 75}))

	animals, err := store.ListAnimals(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, 75.0, animals[0].CurrentWeight)
}
