package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// CartService maintains the server-side cart: one line per (user, product),
// quantity >= 1 while the line exists. Concurrent writes to the same line
// are last-write-wins; no optimistic concurrency token is used.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	// SetQuantity overwrites the stored quantity. A quantity <= 0 removes
	// the line and returns a nil item.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return s.cartRepo.FindByUser(ctx, userID)
}

func (s *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		if err := s.cartRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
			return nil, fmt.Errorf("remove cart line: %w", err)
		}
		return nil, nil
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	item, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err == gorm.ErrRecordNotFound {
		item = &model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart line: %w", err)
		}
		return item, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart line: %w", err)
	}

	// Overwrite, not add. The add-to-cart affordance increments on the
	// client and sends the summed quantity here.
	item.Quantity = quantity
	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update cart line: %w", err)
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.cartRepo.DeleteByUserAndProduct(ctx, userID, productID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}
