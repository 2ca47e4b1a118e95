package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const catalogCacheTTL = 5 * time.Minute

const (
	productsCacheKey   = "catalog:products"
	categoriesCacheKey = "catalog:categories"
)

// CatalogService handles product and category reads plus the admin-gated
// mutations over them. Reads are cached; any mutation invalidates.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, icon string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (productsDeleted int64, err error)
}

// Cache is the caching surface the catalog uses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Cache = (*cache.Client)(nil)

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        Cache
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache Cache) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:product:%s", id.String())
}

// ListProducts returns all products with the derived low-stock flag set.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, productsCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	for i := range products {
		products[i].ComputeLowStock()
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, productsCacheKey, payload, catalogCacheTTL)
	}

	return products, nil
}

// GetProduct retrieves one product by id with caching.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, productCacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	product.ComputeLowStock()

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, productCacheKey(id), payload, catalogCacheTTL)
	}

	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product.ComputeLowStock()
	_ = s.cache.Delete(ctx, productsCacheKey)
	return product, nil
}

// UpdateProduct overwrites the mutable attributes of an existing product.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, update *model.Product) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Title = update.Title
	product.Description = update.Description
	product.Price = update.Price
	product.ImageURL = update.ImageURL
	product.Stock = update.Stock
	product.Category = update.Category
	if update.LowStockThreshold > 0 {
		product.LowStockThreshold = update.LowStockThreshold
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	product.ComputeLowStock()

	_ = s.cache.Delete(ctx, productsCacheKey, productCacheKey(id))
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	_ = s.cache.Delete(ctx, productsCacheKey, productCacheKey(id))
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, categoriesCacheKey); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoriesCacheKey, payload, catalogCacheTTL)
	}

	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return category, nil
}

// UpdateCategory renames a category. Existing products keep their old
// category name; there is no retroactive repointing.
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name, icon string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	category.Name = name
	category.Icon = icon
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return category, nil
}

// DeleteCategory removes the category and cascade-deletes every product
// whose category field equals the category's name at delete time.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, apperrors.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("find category: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}

	deletedIDs, err := s.productRepo.DeleteByCategory(ctx, category.Name)
	if err != nil {
		return 0, fmt.Errorf("cascade delete products: %w", err)
	}

	// Drop the per-product entries of the cascaded products along with the
	// list keys, so a deleted product cannot be served from cache.
	keys := []string{categoriesCacheKey, productsCacheKey}
	for _, productID := range deletedIDs {
		keys = append(keys, productCacheKey(productID))
	}
	_ = s.cache.Delete(ctx, keys...)

	return int64(len(deletedIDs)), nil
}
