package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artesano-backend/internal/domain"
)

type searchUsecase struct {
	catalog    domain.CatalogRepository
	maxResults int
	timeout    time.Duration
}

func NewSearchUsecase(catalog domain.CatalogRepository, maxResults int, timeout time.Duration) domain.SearchUsecase {
	return &searchUsecase{
		catalog:    catalog,
		maxResults: maxResults,
		timeout:    timeout,
	}
}

// Search filters the full catalog by case-insensitive substring match on the
// product name. Catalog order is preserved and the result is capped at
// maxResults after filtering. An empty match set is a valid result.
func (u *searchUsecase) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ValidationError{Field: "q"}
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	catalog, err := u.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	needle := strings.ToLower(query)
	matches := make([]domain.Product, 0, u.maxResults)
	for _, p := range catalog {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		matches = append(matches, p)
		if len(matches) == u.maxResults {
			break
		}
	}

	return matches, nil
}
