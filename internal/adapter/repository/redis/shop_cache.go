package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

const scopeTTL = 5 * time.Minute

// CachedShopRepository fronts a ShopRepository with the Redis cache.
// Shop membership changes rarely; a short TTL bounds the staleness.
type CachedShopRepository struct {
	inner usecase.ShopRepository
	cache usecase.Cache
}

// NewCachedShopRepository creates a new CachedShopRepository.
func NewCachedShopRepository(inner usecase.ShopRepository, cache usecase.Cache) *CachedShopRepository {
	return &CachedShopRepository{inner: inner, cache: cache}
}

// GetScope returns the cached scope when present, falling through to the
// inner repository otherwise. Cache failures are treated as misses.
func (r *CachedShopRepository) GetScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	key := "scope:" + shopID

	if data, err := r.cache.Get(ctx, key); err == nil {
		var scope domain.ShopScope
		if err := json.Unmarshal(data, &scope); err == nil {
			return scope, nil
		}
	}

	scope, err := r.inner.GetScope(ctx, shopID)
	if err != nil {
		return domain.ShopScope{}, err
	}

	if data, err := json.Marshal(scope); err == nil {
		r.cache.Set(ctx, key, data, scopeTTL)
	}

	return scope, nil
}
