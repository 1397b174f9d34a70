package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/models"
	"salesdesk/internal/pricing"
)

// OrderResponse is the list/detail representation of an order, enriched
// with pricing aggregates. Monetary amounts are presented with two
// fractional digits, rounded half away from zero.
type OrderResponse struct {
	ID                       uint                `json:"id"`
	Client                   string              `json:"client"`
	VAT                      decimal.NullDecimal `json:"vat"`
	AdditionalExpenses       decimal.NullDecimal `json:"additional_expenses"`
	CreatedAt                time.Time           `json:"created_at"`
	IsConfirmed              bool                `json:"is_confirmed"`
	IsRejected               bool                `json:"is_rejected"`
	ConfirmedAt              *string             `json:"confirmed_at"`
	WarrantyDaysLeft         *int                `json:"warranty_days_left"`
	TotalPriceWithoutVAT     string              `json:"total_price_without_vat"`
	TotalPriceWithVAT        string              `json:"total_price_with_vat"`
	VATAmount                string              `json:"vat_amount"`
	AdditionalExpensesAmount string              `json:"additional_expenses_amount"`
}

// OrderDetailResponse adds the product list and the grand total.
type OrderDetailResponse struct {
	OrderResponse
	Products           []OrderProductResponse `json:"products"`
	TotalGeneralAmount string                 `json:"total_general_amount"`
}

// OrderProductResponse is a line item with its computed line total.
type OrderProductResponse struct {
	ID         uint            `json:"id"`
	OrderID    uint            `json:"order"`
	Name       string          `json:"name"`
	Quantity   uint            `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice string          `json:"total_price"`
	Photo      string          `json:"photo,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func newOrderResponse(order *models.Order, now time.Time) OrderResponse {
	var confirmedAt *string
	if order.ConfirmedAt != nil {
		s := order.ConfirmedAt.Format("2006-01-02")
		confirmedAt = &s
	}
	return OrderResponse{
		ID:                       order.ID,
		Client:                   order.Client,
		VAT:                      order.VAT,
		AdditionalExpenses:       order.AdditionalExpenses,
		CreatedAt:                order.CreatedAt,
		IsConfirmed:              order.IsConfirmed,
		IsRejected:               order.IsRejected,
		ConfirmedAt:              confirmedAt,
		WarrantyDaysLeft:         pricing.WarrantyDaysLeft(order, now),
		TotalPriceWithoutVAT:     pricing.Subtotal(order).StringFixed(2),
		TotalPriceWithVAT:        pricing.TotalWithVAT(order).StringFixed(2),
		VATAmount:                pricing.VATAmount(order).StringFixed(2),
		AdditionalExpensesAmount: pricing.ExtrasAmount(order).StringFixed(2),
	}
}

func newOrderDetailResponse(order *models.Order, now time.Time) OrderDetailResponse {
	products := make([]OrderProductResponse, 0, len(order.Products))
	for i := range order.Products {
		products = append(products, newOrderProductResponse(&order.Products[i]))
	}
	return OrderDetailResponse{
		OrderResponse:      newOrderResponse(order, now),
		Products:           products,
		TotalGeneralAmount: pricing.GrandTotal(order).StringFixed(2),
	}
}

func newOrderProductResponse(product *models.OrderProduct) OrderProductResponse {
	return OrderProductResponse{
		ID:         product.ID,
		OrderID:    product.OrderID,
		Name:       product.Name,
		Quantity:   product.Quantity,
		Price:      product.Price,
		TotalPrice: product.TotalPrice().StringFixed(2),
		Photo:      product.Photo,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}
