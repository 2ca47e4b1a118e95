package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLowStockThreshold is used when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 5

// Product represents a catalog item. Category is a denormalized name string,
// not a foreign key; category deletion matches on it.
type Product struct {
	ID                uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title             string          `json:"title" gorm:"size:255;not null"`
	Description       string          `json:"description" gorm:"type:text;not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	ImageURL          string          `json:"imageUrl" gorm:"size:512;not null"`
	Stock             int             `json:"stock" gorm:"not null;default:0"`
	Category          string          `json:"category" gorm:"size:255;not null;index"`
	LowStockThreshold int             `json:"lowStockThreshold" gorm:"not null;default:5"`
	LowStock          bool            `json:"lowStock" gorm:"-"` // derived on read
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID and the threshold default before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = DefaultLowStockThreshold
	}
	return nil
}

// ComputeLowStock refreshes the derived low-stock flag.
func (p *Product) ComputeLowStock() {
	p.LowStock = p.Stock <= p.LowStockThreshold
}
