package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"salesdesk/internal/models"
)

// GORMOrderProductRepository is a GORM implementation of OrderProductRepository.
type GORMOrderProductRepository struct {
	db *gorm.DB
}

// NewGORMOrderProductRepository creates a new instance of GORMOrderProductRepository.
func NewGORMOrderProductRepository(db *gorm.DB) *GORMOrderProductRepository {
	return &GORMOrderProductRepository{
		db: db,
	}
}

// ListByOrder retrieves all products of an order, ordered by ID.
func (r *GORMOrderProductRepository) ListByOrder(orderID uint) ([]models.OrderProduct, error) {
	var products []models.OrderProduct
	if err := r.db.Where("order_id = ?", orderID).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products for order %d: %w", orderID, err)
	}
	return products, nil
}

// GetByID retrieves a single product belonging to the given order.
func (r *GORMOrderProductRepository) GetByID(orderID, productID uint) (*models.OrderProduct, error) {
	var product models.OrderProduct
	err := r.db.Where("order_id = ?", orderID).First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %d not found in order %d: %w", productID, orderID, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d of order %d: %w", productID, orderID, err)
	}
	return &product, nil
}

// Create creates a new product under its order.
func (r *GORMOrderProductRepository) Create(product *models.OrderProduct) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMOrderProductRepository) Update(product *models.OrderProduct) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found: %w", product.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a product from the given order.
func (r *GORMOrderProductRepository) Delete(orderID, productID uint) error {
	res := r.db.Where("order_id = ?", orderID).Delete(&models.OrderProduct{}, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found in order %d: %w", productID, orderID, gorm.ErrRecordNotFound)
	}
	return nil
}
