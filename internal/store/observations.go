// internal/store/observations.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

// ObservationStore is the external key-value persistence collaborator. The
// engines read observation histories through it and append computed results;
// they never mutate stored observations.
type ObservationStore interface {
	AppendWeight(ctx context.Context, obs models.WeightObservation) error
	AppendFeed(ctx context.Context, obs models.FeedObservation) error
	AppendPhoto(ctx context.Context, obs models.PhotoObservation) error
	AppendFCRResult(ctx context.Context, result models.FCRResult) error
	ListWeights(ctx context.Context, animalID string) ([]models.WeightObservation, error)
	ListFeeds(ctx context.Context, animalID string) ([]models.FeedObservation, error)
	ListFeedsByProduct(ctx context.Context, animalID, feedProductID string) ([]models.FeedObservation, error)
	ListPhotos(ctx context.Context, animalID string) ([]models.PhotoObservation, error)
	ListFCRResults(ctx context.Context, animalID string) ([]models.FCRResult, error)
}

// RedisStore implements ObservationStore on Redis lists, one list per animal
// and observation kind, JSON-encoded values.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func weightKey(animalID string) string { return "obs:weight:" + animalID }
func feedKey(animalID string) string   { return "obs:feed:" + animalID }
func photoKey(animalID string) string  { return "obs:photo:" + animalID }
func fcrKey(animalID string) string    { return "result:fcr:" + animalID }

func (s *RedisStore) appendJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

func listJSON[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	vals, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}
	out := make([]T, 0, len(vals))
	for _, raw := range vals {
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", key, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *RedisStore) AppendWeight(ctx context.Context, obs models.WeightObservation) error {
	return s.appendJSON(ctx, weightKey(obs.AnimalID), obs)
}

func (s *RedisStore) AppendFeed(ctx context.Context, obs models.FeedObservation) error {
	return s.appendJSON(ctx, feedKey(obs.AnimalID), obs)
}

func (s *RedisStore) AppendPhoto(ctx context.Context, obs models.PhotoObservation) error {
	return s.appendJSON(ctx, photoKey(obs.AnimalID), obs)
}

func (s *RedisStore) AppendFCRResult(ctx context.Context, result models.FCRResult) error {
	return s.appendJSON(ctx, fcrKey(result.AnimalID), result)
}

func (s *RedisStore) ListWeights(ctx context.Context, animalID string) ([]models.WeightObservation, error) {
	return listJSON[models.WeightObservation](ctx, s.client, weightKey(animalID))
}

func (s *RedisStore) ListFeeds(ctx context.Context, animalID string) ([]models.FeedObservation, error) {
	return listJSON[models.FeedObservation](ctx, s.client, feedKey(animalID))
}

func (s *RedisStore) ListFeedsByProduct(ctx context.Context, animalID, feedProductID string) ([]models.FeedObservation, error) {
	feeds, err := s.ListFeeds(ctx, animalID)
	if err != nil {
		return nil, err
	}
	out := feeds[:0:0]
	for _, f := range feeds {
		if f.FeedProductID == feedProductID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *RedisStore) ListPhotos(ctx context.Context, animalID string) ([]models.PhotoObservation, error) {
	return listJSON[models.PhotoObservation](ctx, s.client, photoKey(animalID))
}

func (s *RedisStore) ListFCRResults(ctx context.Context, animalID string) ([]models.FCRResult, error) {
	return listJSON[models.FCRResult](ctx, s.client, fcrKey(animalID))
}
