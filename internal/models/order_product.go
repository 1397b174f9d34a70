package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProduct is a single line item of an order. Photo holds a handle into
// the media store (relative path under the uploads root), empty when the
// product has no photo.
type OrderProduct struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Quantity  uint            `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Photo     string          `json:"photo,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TotalPrice is the line total, quantity times unit price.
func (p *OrderProduct) TotalPrice() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
