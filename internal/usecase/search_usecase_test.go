package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesano-backend/internal/domain"
)

type fakeCatalogRepo struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeCatalogRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalogRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func namedProducts(names ...string) []domain.Product {
	products := make([]domain.Product, len(names))
	for i, n := range names {
		products[i] = domain.Product{ID: fmt.Sprintf("p%d", i+1), Name: n}
	}
	return products
}

func TestSearchFiltersByNameSubstring(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Red Vase", "Blue Lamp", "Red Chair")}
	uc := NewSearchUsecase(repo, 10, time.Second)

	results, err := uc.Search(context.Background(), "red")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Red Vase", results[0].Name)
	assert.Equal(t, "Red Chair", results[1].Name)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Walnut TABLE", "ceramic bowl")}
	uc := NewSearchUsecase(repo, 10, time.Second)

	results, err := uc.Search(context.Background(), "TaBlE")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Walnut TABLE", results[0].Name)
}

func TestSearchTruncatesAfterFiltering(t *testing.T) {
	names := make([]string, 0, 25)
	for i := 1; i <= 25; i++ {
		names = append(names, fmt.Sprintf("Oak Shelf %d", i))
	}
	repo := &fakeCatalogRepo{products: namedProducts(names...)}
	uc := NewSearchUsecase(repo, 10, time.Second)

	results, err := uc.Search(context.Background(), "oak")
	require.NoError(t, err)

	// Capped at 10, preserving catalog order: the first 10 matches
	require.Len(t, results, 10)
	assert.Equal(t, "Oak Shelf 1", results[0].Name)
	assert.Equal(t, "Oak Shelf 10", results[9].Name)
}

func TestSearchEmptyResultIsSuccess(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Red Vase")}
	uc := NewSearchUsecase(repo, 10, time.Second)

	results, err := uc.Search(context.Background(), "zebra")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Red Vase")}
	uc := NewSearchUsecase(repo, 10, time.Second)

	for _, q := range []string{"", "   "} {
		_, err := uc.Search(context.Background(), q)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "q", vErr.Field)
	}
	assert.Zero(t, repo.calls, "catalog must not be fetched for invalid queries")
}

func TestSearchCatalogFailure(t *testing.T) {
	repo := &fakeCatalogRepo{err: errors.New("connection refused")}
	uc := NewSearchUsecase(repo, 10, time.Second)

	_, err := uc.Search(context.Background(), "vase")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
