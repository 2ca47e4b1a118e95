package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderService converts cart snapshots into orders and manages the status
// lifecycle. Stock is an independently admin-managed counter; placement
// does not reserve or debit it.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// PlaceOrder snapshots the user's cart into an immutable order with status
// pending, totals price x quantity at placement time, and clears the cart.
// Lines whose product no longer resolves are skipped.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	total := decimal.Zero
	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		if item.Product.ID == uuid.Nil {
			// dangling reference from a deleted product
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if len(lines) == 0 {
		return nil, apperrors.ErrCartEmpty
	}

	order := &model.Order{
		UserID:      userID,
		Products:    lines,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Best effort: the order exists even if clearing the cart fails.
	_ = s.cartRepo.DeleteByUser(ctx, userID)

	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// UpdateStatus sets the order status to any of the known values. No
// transition table is enforced; delivered -> pending is accepted.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	return order, nil
}
