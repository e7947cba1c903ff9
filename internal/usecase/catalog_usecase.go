package usecase

import (
	"context"
	"time"

	"artesano-backend/internal/domain"
	"artesano-backend/pkg/cache"
)

const catalogCacheKey = "catalog:all"

type CatalogUsecase struct {
	repo  domain.CatalogRepository
	cache cache.CacheService
	ttl   time.Duration
}

func NewCatalogUsecase(repo domain.CatalogRepository, cache cache.CacheService, ttl time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// GetProducts returns the active catalog for browse pages. The snapshot is
// cached; search bypasses this and reads the repository directly.
func (u *CatalogUsecase) GetProducts(ctx context.Context) ([]domain.Product, error) {
	if val, found := u.cache.Get(catalogCacheKey); found {
		return val.([]domain.Product), nil
	}

	products, err := u.repo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(catalogCacheKey, products, u.ttl)
	return products, nil
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.repo.GetProductByID(ctx, id)
}
