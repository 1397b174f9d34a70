package services

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/media"
	"salesdesk/internal/models"
	"salesdesk/internal/pricing"
	"salesdesk/internal/repositories"
	"salesdesk/pkg/rabbitmq"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	media     *media.Store
	mqClient  *rabbitmq.Client // optional, may be nil
}

// NewOrderService creates a new OrderService. mqClient may be nil when no
// broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, mediaStore *media.Store, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		media:     mediaStore,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders with their products.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order with its products.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder creates a new order. The model hook rejects a payload that is
// both confirmed and rejected.
func (s *OrderService) CreateOrder(order *models.Order) error {
	if err := s.orderRepo.Create(order); err != nil {
		return err
	}
	s.publishEvent("order.created", order)
	return nil
}

// UpdateOrder replaces the fields of an existing order. Flags may change,
// but the model hook still enforces mutual exclusion and keeps terminal
// timestamps that were already stamped.
func (s *OrderService) UpdateOrder(order *models.Order) error {
	return s.orderRepo.Update(order)
}

// DeleteOrder removes an order, its products and, best-effort, their photo
// blobs. A blob that cannot be removed is logged and skipped.
func (s *OrderService) DeleteOrder(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}
	for i := range order.Products {
		if err := s.media.Delete(order.Products[i].Photo); err != nil {
			log.Printf("order %d: failed to delete photo blob: %v", id, err)
		}
	}
	return nil
}

// ConfirmOrder moves the order to the confirmed state. Confirming twice is
// a no-op; confirming a rejected order fails.
func (s *OrderService) ConfirmOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.Confirm(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("order.confirmed", order)
	return order, nil
}

// RejectOrder moves the order to the rejected state. Rejecting twice is a
// no-op; rejecting a confirmed order fails.
func (s *OrderService) RejectOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.Reject(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("order.rejected", order)
	return order, nil
}

// ConfirmedOrdersBetween lists confirmed orders created in the inclusive
// date range and the sum of their totals with VAT.
func (s *OrderService) ConfirmedOrdersBetween(start, end time.Time) ([]models.Order, string, error) {
	orders, err := s.orderRepo.ListConfirmedBetween(start, end)
	if err != nil {
		return nil, "", err
	}
	total := pricingTotal(orders)
	return orders, total, nil
}

func pricingTotal(orders []models.Order) string {
	sum := decimal.Zero
	for i := range orders {
		sum = sum.Add(pricing.TotalWithVAT(&orders[i]))
	}
	return sum.StringFixed(2)
}

func (s *OrderService) publishEvent(event string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"orderID": order.ID,
		"client":  order.Client,
	}
	if err := s.mqClient.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", event, order.ID, err)
	}
}
