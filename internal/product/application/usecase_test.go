package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/internal/product/domain"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*domain.Product
	listCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[uuid.UUID]*domain.Product{}}
}

func (r *fakeProductRepo) Save(ctx context.Context, db database.Database, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewRepoNotFound("Product")
}

func (r *fakeProductRepo) List(ctx context.Context, db database.Database) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	products := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		products = append(products, p)
	}
	return products, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]string{}} }

func (c *fakeCache) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return "", apperrors.NewRepoNotFound("CacheEntry")
	}
	return v, nil
}

func (c *fakeCache) Set(key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func TestProductUseCase_CreateAndGet(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, nil, nil)

	p, err := uc.Create(context.Background(), "widget", 9.99)
	require.NoError(t, err)

	found, err := uc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func TestProductUseCase_Create_RejectsInvalid(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), "", 9.99)
	require.Error(t, err)
	assert.Empty(t, repo.byID)
}

func TestProductUseCase_List_NoCachePassesThrough(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), "widget", 9.99)
	require.NoError(t, err)

	products, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestProductUseCase_List_CachesAcrossCalls(t *testing.T) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	uc := NewProductUseCase(repo, nil, cache)

	_, err := uc.Create(context.Background(), "widget", 9.99)
	require.NoError(t, err)

	first, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, repo.listCalls)

	second, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls, "a second List within the TTL must be served from cache, not the repository")
}
