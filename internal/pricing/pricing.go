// Package pricing computes monetary aggregates for orders. All arithmetic is
// exact fixed-point decimal; rounding to two fractional digits happens only
// where values are presented, never here.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/models"
)

// WarrantyDays is the warranty period granted from the confirmation date.
const WarrantyDays = 365

var hundred = decimal.NewFromInt(100)

// Subtotal sums quantity times unit price over all products of the order.
func Subtotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	for i := range order.Products {
		total = total.Add(order.Products[i].TotalPrice())
	}
	return total
}

// VATAmount is the subtotal share of the order's VAT percentage.
// An absent VAT counts as zero.
func VATAmount(order *models.Order) decimal.Decimal {
	if !order.VAT.Valid {
		return decimal.Zero
	}
	return Subtotal(order).Mul(order.VAT.Decimal).Div(hundred)
}

// ExtrasAmount is the subtotal share of the order's additional-expenses
// percentage. An absent percentage counts as zero.
func ExtrasAmount(order *models.Order) decimal.Decimal {
	if !order.AdditionalExpenses.Valid {
		return decimal.Zero
	}
	return Subtotal(order).Mul(order.AdditionalExpenses.Decimal).Div(hundred)
}

// TotalWithVAT is subtotal plus the VAT amount.
func TotalWithVAT(order *models.Order) decimal.Decimal {
	return Subtotal(order).Add(VATAmount(order))
}

// GrandTotal is subtotal plus VAT plus additional expenses.
func GrandTotal(order *models.Order) decimal.Decimal {
	return Subtotal(order).Add(VATAmount(order)).Add(ExtrasAmount(order))
}

// WarrantyDaysLeft returns the remaining warranty days for a confirmed
// order, floored at zero, or nil for an order that was never confirmed.
func WarrantyDaysLeft(order *models.Order, now time.Time) *int {
	if !order.IsConfirmed || order.ConfirmedAt == nil {
		return nil
	}
	end := order.ConfirmedAt.AddDate(0, 0, WarrantyDays)
	days := int(end.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
