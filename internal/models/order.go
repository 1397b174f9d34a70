package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrConflictingState is returned when a write tries to mark an order as
// both confirmed and rejected.
var ErrConflictingState = errors.New("order cannot be confirmed and rejected at the same time")

// Order represents a sales order belonging to a client.
type Order struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	Client             string              `json:"client" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	VAT                decimal.NullDecimal `json:"vat" gorm:"type:decimal(5,2)"`
	AdditionalExpenses decimal.NullDecimal `json:"additional_expenses" gorm:"type:decimal(5,2)"`
	CreatedAt          time.Time           `json:"created_at"`
	IsConfirmed        bool                `json:"is_confirmed"`
	IsRejected         bool                `json:"is_rejected"`
	ConfirmedAt        *time.Time          `json:"confirmed_at"`
	RejectedAt         *time.Time          `json:"rejected_at"`
	Products           []OrderProduct      `json:"products,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// BeforeSave enforces the confirmed/rejected mutual exclusion and stamps the
// terminal timestamps exactly once, on the false to true transition.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.IsConfirmed && o.IsRejected {
		return ErrConflictingState
	}
	now := time.Now()
	if o.IsConfirmed && o.ConfirmedAt == nil {
		o.ConfirmedAt = &now
	}
	if o.IsRejected && o.RejectedAt == nil {
		o.RejectedAt = &now
	}
	return nil
}
