package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func cartLine(userID uuid.UUID, price string, quantity int) model.CartItem {
	productID := uuid.New()
	return model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Product: model.Product{
			ID:    productID,
			Price: decimal.RequireFromString(price),
		},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("totals price times quantity and clears the cart", func(t *testing.T) {
		items := []model.CartItem{
			cartLine(userID, "10", 2),
			cartLine(userID, "5", 1),
		}

		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockCart.On("FindByUser", mock.Anything, userID).Return(items, nil)
		mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		mockCart.On("DeleteByUser", mock.Anything, userID).Return(nil)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.PlaceOrder(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(25)),
			"expected total 25, got %s", order.TotalAmount)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Len(t, order.Products, 2)
		mockCart.AssertCalled(t, "DeleteByUser", mock.Anything, userID)
		mockOrders.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockCart.On("FindByUser", mock.Anything, userID).Return([]model.CartItem{}, nil)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.PlaceOrder(context.Background(), userID)

		assert.Equal(t, apperrors.ErrCartEmpty, err)
		assert.Nil(t, order)
		mockOrders.AssertNotCalled(t, "Create")
	})

	t.Run("skips lines whose product no longer resolves", func(t *testing.T) {
		dangling := model.CartItem{
			UserID:    userID,
			ProductID: uuid.New(),
			Quantity:  4,
			// Product left zero-valued: the referenced product was deleted
		}
		items := []model.CartItem{
			dangling,
			cartLine(userID, "10", 2),
		}

		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockCart.On("FindByUser", mock.Anything, userID).Return(items, nil)
		mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		mockCart.On("DeleteByUser", mock.Anything, userID).Return(nil)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.PlaceOrder(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, order.Products, 1)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("cart with only dangling lines", func(t *testing.T) {
		items := []model.CartItem{
			{UserID: userID, ProductID: uuid.New(), Quantity: 1},
		}

		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockCart.On("FindByUser", mock.Anything, userID).Return(items, nil)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.PlaceOrder(context.Background(), userID)

		assert.Equal(t, apperrors.ErrCartEmpty, err)
		assert.Nil(t, order)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderID := uuid.New()

	t.Run("accepts any known status in any order", func(t *testing.T) {
		// delivered -> pending is deliberately allowed
		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(&model.Order{
			ID:     orderID,
			Status: model.OrderStatusDelivered,
		}, nil)
		mockOrders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusPending).Return(nil)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.UpdateStatus(context.Background(), orderID, model.OrderStatusPending)

		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		mockOrders.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.UpdateStatus(context.Background(), orderID, "refunded")

		assert.Equal(t, apperrors.ErrInvalidOrderStatus, err)
		assert.Nil(t, order)
		mockOrders.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("unknown order", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockCart := new(MockCartRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		service := NewOrderService(mockOrders, mockCart)
		order, err := service.UpdateStatus(context.Background(), orderID, model.OrderStatusPaid)

		assert.Equal(t, apperrors.ErrOrderNotFound, err)
		assert.Nil(t, order)
	})
}
