package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/internal/product/application"
	"flashsale/internal/product/domain"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type fakeProductRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*domain.Product
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
	products := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		products = append(products, p)
	}
	return products, nil
}

func newTestRouter() (http.Handler, *fakeProductRepo) {
	repo := newFakeProductRepo()
	uc := application.NewProductUseCase(repo, nil, nil)
	h := NewHandler(uc)

	r := chi.NewRouter()
	h.Routes(r)
	return r, repo
}

func TestCreate_Success(t *testing.T) {
	router, _ := newTestRouter()

	body, _ := json.Marshal(createProductRequest{Name: "widget", Price: 9.99})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreate_MalformedBody(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{not-json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_InvalidProductRejected(t *testing.T) {
	router, _ := newTestRouter()

	body, _ := json.Marshal(createProductRequest{Name: "", Price: 9.99})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet_NotFound(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGet_InvalidID(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_ReturnsCreatedProducts(t *testing.T) {
	router, repo := newTestRouter()

	p, err := domain.NewProduct("widget", 9.99)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), nil, p))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}
