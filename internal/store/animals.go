// internal/store/animals.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"
)

// AnimalDirectory resolves animal identity. Animal records are owned by the
// animal-management collaborator; this is a read-mostly mirror.
type AnimalDirectory interface {
	RegisterAnimal(ctx context.Context, userID string, animal models.AnimalRef) error
	GetAnimal(ctx context.Context, animalID string) (models.AnimalRef, error)
	ListAnimals(ctx context.Context, userID string) ([]models.AnimalRef, error)
}

func animalKey(animalID string) string { return "animal:" + animalID }
func ownedKey(userID string) string    { return "user:" + userID + ":animals" }

// RegisterAnimal upserts the animal record and links it to its owner.
func (s *RedisStore) RegisterAnimal(ctx context.Context, userID string, animal models.AnimalRef) error {
	data, err := json.Marshal(animal)
	if err != nil {
		return fmt.Errorf("marshal animal %s: %w", animal.ID, err)
	}
	if err := s.client.Set(ctx, animalKey(animal.ID), data, 0).Err(); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	if err := s.client.SAdd(ctx, ownedKey(userID), animal.ID).Err(); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

func (s *RedisStore) GetAnimal(ctx context.Context, animalID string) (models.AnimalRef, error) {
	raw, err := s.client.Get(ctx, animalKey(animalID)).Result()
	if err == redis.Nil {
		return models.AnimalRef{}, errors.NewNotFoundError("animal", animalID)
	}
	if err != nil {
		return models.AnimalRef{}, errors.NewStoreUnavailableError(err)
	}
	var animal models.AnimalRef
	if err := json.Unmarshal([]byte(raw), &animal); err != nil {
		return models.AnimalRef{}, fmt.Errorf("unmarshal animal %s: %w", animalID, err)
	}
	return animal, nil
}

// ListAnimals returns the user's animals sorted by id. An unknown user yields
// an empty slice, not an error.
func (s *RedisStore) ListAnimals(ctx context.Context, userID string) ([]models.AnimalRef, error) {
	ids, err := s.client.SMembers(ctx, ownedKey(userID)).Result()
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}

	out := make([]models.AnimalRef, 0, len(ids))
	for _, id := range ids {
		animal, err := s.GetAnimal(ctx, id)
		if err != nil {
			if errors.AsStandardError(err).Code == errors.ErrCodeNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, animal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
