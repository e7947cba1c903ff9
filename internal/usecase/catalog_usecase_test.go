package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	items map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]interface{})}
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value interface{}, duration time.Duration) {
	c.items[key] = value
}

func (c *fakeCache) Delete(key string) { delete(c.items, key) }
func (c *fakeCache) Flush()            { c.items = make(map[string]interface{}) }

func TestGetProductsCachesSnapshot(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Red Vase", "Blue Lamp")}
	uc := NewCatalogUsecase(repo, newFakeCache(), 10*time.Minute)

	first, err := uc.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := uc.GetProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second read should be served from cache")
}

func TestGetProductsRepoFailure(t *testing.T) {
	repo := &fakeCatalogRepo{err: errors.New("connection refused")}
	uc := NewCatalogUsecase(repo, newFakeCache(), 10*time.Minute)

	_, err := uc.GetProducts(context.Background())
	assert.Error(t, err)
}

func TestGetProductByID(t *testing.T) {
	repo := &fakeCatalogRepo{products: namedProducts("Red Vase")}
	uc := NewCatalogUsecase(repo, newFakeCache(), 10*time.Minute)

	p, err := uc.GetProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Red Vase", p.Name)
}
