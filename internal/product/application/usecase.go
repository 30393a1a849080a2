package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"flashsale/internal/product/domain"
	"flashsale/shared/infra/cache"
	"flashsale/shared/infra/database"
)

const productListCacheKey = "products:list"
const productListCacheTTL = 5 * time.Second

type ProductUseCase struct {
	repo  domain.Repository
	db    database.Database
	cache cache.CacheHandler
}

func NewProductUseCase(repo domain.Repository, db database.Database, cache cache.CacheHandler) *ProductUseCase {
	return &ProductUseCase{repo: repo, db: db, cache: cache}
}

func (uc *ProductUseCase) Create(ctx context.Context, name string, price float64) (*domain.Product, error) {
	product, err := domain.NewProduct(name, price)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, uc.db, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.repo.FindByID(ctx, uc.db, id)
}

func (uc *ProductUseCase) List(ctx context.Context) ([]*domain.Product, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(productListCacheKey); err == nil {
			var products []*domain.Product
			if jsonErr := json.Unmarshal([]byte(cached), &products); jsonErr == nil {
				return products, nil
			}
		}
	}

	products, err := uc.repo.List(ctx, uc.db)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(products); err == nil {
			_ = uc.cache.Set(productListCacheKey, string(encoded), productListCacheTTL)
		}
	}

	return products, nil
}
