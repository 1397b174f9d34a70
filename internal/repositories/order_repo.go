package repositories

import (
	"errors"
	"time"

	"salesdesk/internal/models"
)

// Lifecycle transition errors. Confirm and reject are idempotent, but a
// terminal state can never flip to the opposite one.
var (
	ErrConfirmRejected = errors.New("cannot confirm a rejected order")
	ErrRejectConfirmed = errors.New("cannot reject a confirmed order")
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id uint) error
	Confirm(id uint) (*models.Order, error)
	Reject(id uint) (*models.Order, error)
	ListConfirmedBetween(start, end time.Time) ([]models.Order, error)
}
