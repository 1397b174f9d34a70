package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"salesdesk/internal/export"
	"salesdesk/internal/models"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOrderRepository) Confirm(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Reject(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListConfirmedBetween(start, end time.Time) ([]models.Order, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockOrderProductRepository is a mock implementation of
// repositories.OrderProductRepository.
type MockOrderProductRepository struct {
	mock.Mock
}

func (m *MockOrderProductRepository) ListByOrder(orderID uint) ([]models.OrderProduct, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderProduct), args.Error(1)
}

func (m *MockOrderProductRepository) GetByID(orderID, productID uint) (*models.OrderProduct, error) {
	args := m.Called(orderID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderProduct), args.Error(1)
}

func (m *MockOrderProductRepository) Create(product *models.OrderProduct) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockOrderProductRepository) Update(product *models.OrderProduct) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockOrderProductRepository) Delete(orderID, productID uint) error {
	args := m.Called(orderID, productID)
	return args.Error(0)
}

// MockRenderer is a mock implementation of services.DocumentRenderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(order *models.Order, format export.Format) (string, error) {
	args := m.Called(order, format)
	return args.String(0), args.Error(1)
}

// MockDispatcher is a mock implementation of services.DocumentDispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendDocument(ctx context.Context, filePath string) (bool, error) {
	args := m.Called(ctx, filePath)
	return args.Bool(0), args.Error(1)
}
