// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

// Catalog exposes the read-only feed-product reference data.
type Catalog interface {
	GetProduct(ctx context.Context, feedProductID string) (*models.FeedProductProfile, error)
	ListForSpecies(ctx context.Context, species string) ([]models.FeedProductProfile, error)
}

// Store reads the catalog from Postgres with a Redis read-through cache.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewStore(db *sql.DB, redisClient *redis.Client, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    redisClient,
		cacheTTL: 10 * time.Minute,
		logger:   log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

const productColumns = `id, name, species, protein, fat, fiber, reference_fcr, reference_gain, cost_per_pound, efficiency_score`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.FeedProductProfile, error) {
	var p models.FeedProductProfile
	err := row.Scan(&p.ID, &p.Name, &p.Species, &p.Protein, &p.Fat, &p.Fiber,
		&p.ReferenceFCR, &p.ReferenceGain, &p.CostPerPound, &p.EfficiencyScore)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetProduct(ctx context.Context, feedProductID string) (*models.FeedProductProfile, error) {
	cacheKey := "catalog:product:" + feedProductID
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var p models.FeedProductProfile
			if err := json.Unmarshal([]byte(val), &p); err == nil {
				return &p, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM feed_products WHERE id = $1`, feedProductID)
	p, err := scanProduct(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("feed product", feedProductID)
		}
		return nil, errors.NewCatalogQueryFailedError(err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redis.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return p, nil
}

// ListForSpecies returns products matching the species plus species-agnostic
// products, in catalog order.
func (s *Store) ListForSpecies(ctx context.Context, species string) ([]models.FeedProductProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM feed_products WHERE species = $1 OR species = '' ORDER BY id`,
		species)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}
	defer rows.Close()

	var products []models.FeedProductProfile
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.NewCatalogQueryFailedError(err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError(err)
	}

	return products, nil
}
