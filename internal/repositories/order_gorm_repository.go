package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"salesdesk/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their products, ordered by ID.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Products", orderByProductID).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its products.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Products", orderByProductID).First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create creates a new order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update saves all fields of an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit("Products").Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found: %w", order.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes an order and, through the FK constraint, its products.
// SQLite in tests does not always enforce cascades, so products are removed
// explicitly within the same transaction.
func (r *GORMOrderRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}

// Confirm flips the order to the confirmed state inside one transaction,
// re-checking the rejected flag so two concurrent writers cannot produce a
// conflicting state. Confirming an already confirmed order is a no-op.
func (r *GORMOrderRepository) Confirm(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order with ID %d not found: %w", id, gorm.ErrRecordNotFound)
			}
			return err
		}
		if order.IsRejected {
			return ErrConfirmRejected
		}
		if order.IsConfirmed {
			return nil
		}
		order.IsConfirmed = true
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Reject flips the order to the rejected state, with the same transactional
// re-check as Confirm. Rejecting an already rejected order is a no-op.
func (r *GORMOrderRepository) Reject(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order with ID %d not found: %w", id, gorm.ErrRecordNotFound)
			}
			return err
		}
		if order.IsConfirmed {
			return ErrRejectConfirmed
		}
		if order.IsRejected {
			return nil
		}
		order.IsRejected = true
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListConfirmedBetween returns confirmed orders created in the inclusive
// [start, end] range, with products preloaded for pricing.
func (r *GORMOrderRepository) ListConfirmedBetween(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Products", orderByProductID).
		Where("is_confirmed = ? AND created_at >= ? AND created_at <= ?", true, start, end).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed orders: %w", err)
	}
	return orders, nil
}

func orderByProductID(db *gorm.DB) *gorm.DB {
	return db.Order("order_products.id")
}
