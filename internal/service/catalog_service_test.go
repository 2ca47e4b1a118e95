package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeCache records deletions so tests can assert invalidation.
type fakeCache struct {
	store   map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	return f.store[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.store[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	categoryID := uuid.New()

	t.Run("cascade deletes products matching the category name", func(t *testing.T) {
		deletedIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:   categoryID,
			Name: "Shoes",
		}, nil)
		mockCategories.On("Delete", mock.Anything, categoryID).Return(nil)
		// only products whose category field matches "Shoes" go away
		mockProducts.On("DeleteByCategory", mock.Anything, "Shoes").Return(deletedIDs, nil)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		deleted, err := service.DeleteCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		mockProducts.AssertExpectations(t)
		mockCategories.AssertExpectations(t)
	})

	t.Run("invalidates the per-product entries of cascaded products", func(t *testing.T) {
		deletedIDs := []uuid.UUID{uuid.New(), uuid.New()}

		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:   categoryID,
			Name: "Shoes",
		}, nil)
		mockCategories.On("Delete", mock.Anything, categoryID).Return(nil)
		mockProducts.On("DeleteByCategory", mock.Anything, "Shoes").Return(deletedIDs, nil)

		cache := newFakeCache()
		_, err := NewCatalogService(mockProducts, mockCategories, cache).
			DeleteCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.Contains(t, cache.deleted, productsCacheKey)
		assert.Contains(t, cache.deleted, categoriesCacheKey)
		for _, productID := range deletedIDs {
			assert.Contains(t, cache.deleted, productCacheKey(productID))
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		deleted, err := service.DeleteCategory(context.Background(), categoryID)

		assert.Equal(t, apperrors.ErrCategoryNotFound, err)
		assert.Zero(t, deleted)
		mockProducts.AssertNotCalled(t, "DeleteByCategory")
	})
}

func TestCatalogService_CreateCategory(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
			Return(gorm.ErrDuplicatedKey)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		category, err := service.CreateCategory(context.Background(), &model.Category{Name: "Shoes"})

		assert.Equal(t, apperrors.ErrCategoryNameTaken, err)
		assert.Nil(t, category)
	})
}

func TestCatalogService_UpdateCategory(t *testing.T) {
	categoryID := uuid.New()

	t.Run("rename does not touch products", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:   categoryID,
			Name: "Shoes",
			Icon: "boot",
		}, nil)
		mockCategories.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
			return c.Name == "Footwear" && c.Icon == "sneaker"
		})).Return(nil)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		category, err := service.UpdateCategory(context.Background(), categoryID, "Footwear", "sneaker")

		assert.NoError(t, err)
		assert.Equal(t, "Footwear", category.Name)
		mockProducts.AssertNotCalled(t, "DeleteByCategory")
		mockProducts.AssertNotCalled(t, "Update")
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
			ID:   categoryID,
			Name: "Shoes",
		}, nil)
		mockCategories.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).
			Return(gorm.ErrDuplicatedKey)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		category, err := service.UpdateCategory(context.Background(), categoryID, "Clothing", "shirt")

		assert.Equal(t, apperrors.ErrCategoryNameTaken, err)
		assert.Nil(t, category)
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("sets the derived low stock flag", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{
			ID:                productID,
			Title:             "Leather Belt",
			Price:             decimal.RequireFromString("24.50"),
			Stock:             4,
			LowStockThreshold: 5,
		}, nil)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		product, err := service.GetProduct(context.Background(), productID)

		assert.NoError(t, err)
		assert.True(t, product.LowStock)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{
			ID:    productID,
			Title: "Leather Belt",
			Price: decimal.RequireFromString("24.50"),
		}, nil).Once()

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		_, err := service.GetProduct(context.Background(), productID)
		assert.NoError(t, err)

		product, err := service.GetProduct(context.Background(), productID)
		assert.NoError(t, err)
		assert.Equal(t, "Leather Belt", product.Title)
		mockProducts.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("unknown product", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		mockProducts.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
		product, err := service.GetProduct(context.Background(), productID)

		assert.Equal(t, apperrors.ErrProductNotFound, err)
		assert.Nil(t, product)
	})
}

func TestCatalogService_ListProducts(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockProducts.On("List", mock.Anything).Return([]model.Product{
		{Title: "Plenty", Stock: 40, LowStockThreshold: 5},
		{Title: "Scarce", Stock: 5, LowStockThreshold: 5},
	}, nil)

	service := NewCatalogService(mockProducts, mockCategories, newFakeCache())
	products, err := service.ListProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.False(t, products[0].LowStock)
	assert.True(t, products[1].LowStock)
}
