package repositories

import (
	"salesdesk/internal/models"
)

// OrderProductRepository defines the interface for line-item data access.
// All lookups are scoped to the owning order.
type OrderProductRepository interface {
	ListByOrder(orderID uint) ([]models.OrderProduct, error)
	GetByID(orderID, productID uint) (*models.OrderProduct, error)
	Create(product *models.OrderProduct) error
	Update(product *models.OrderProduct) error
	Delete(orderID, productID uint) error
}
