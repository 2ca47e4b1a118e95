package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether status is one of the known order statuses.
// Transitions between statuses are deliberately unconstrained.
func ValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLine is a (product, quantity) snapshot inside an order.
type OrderLine struct {
	ID        uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	OrderID   uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:char(36);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
}

// BeforeCreate sets UUID before creating the record.
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Order is an immutable snapshot of a cart at checkout. Only Status changes
// after creation; TotalAmount is never recomputed from live prices.
type Order struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	Products    []OrderLine     `json:"products" gorm:"foreignKey:OrderID"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(20,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
