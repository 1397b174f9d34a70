package services

import (
	"fmt"
	"io"
	"log"

	"salesdesk/internal/media"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

// OrderProductService handles business logic for order line items,
// including the photo blob lifecycle.
type OrderProductService struct {
	productRepo repositories.OrderProductRepository
	orderRepo   repositories.OrderRepository
	media       *media.Store
}

// NewOrderProductService creates a new OrderProductService.
func NewOrderProductService(productRepo repositories.OrderProductRepository, orderRepo repositories.OrderRepository, mediaStore *media.Store) *OrderProductService {
	return &OrderProductService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		media:       mediaStore,
	}
}

// ListByOrder returns the products of an order. The order must exist.
func (s *OrderProductService) ListByOrder(orderID uint) ([]models.OrderProduct, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByOrder(orderID)
}

// AddProduct adds a product to an order. When photoName is non-empty, the
// photo is stored first so a failed row write leaves no dangling reference.
func (s *OrderProductService) AddProduct(orderID uint, product *models.OrderProduct, photoName string, photo io.Reader) error {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return err
	}
	product.OrderID = orderID

	if photoName != "" {
		handle, err := s.media.Save(photoName, photo)
		if err != nil {
			return fmt.Errorf("failed to store photo: %w", err)
		}
		product.Photo = handle
	}

	if err := s.productRepo.Create(product); err != nil {
		if product.Photo != "" {
			if delErr := s.media.Delete(product.Photo); delErr != nil {
				log.Printf("order %d: failed to clean up photo blob: %v", orderID, delErr)
			}
		}
		return err
	}
	return nil
}

// UpdateProduct edits a product of an order. A new photo replaces the old
// blob: the new one is persisted first, the row is updated, and only then
// the prior blob is deleted, so no orphan survives the write.
func (s *OrderProductService) UpdateProduct(orderID, productID uint, update *models.OrderProduct, photoName string, photo io.Reader) (*models.OrderProduct, error) {
	existing, err := s.productRepo.GetByID(orderID, productID)
	if err != nil {
		return nil, err
	}

	oldPhoto := existing.Photo
	existing.Name = update.Name
	existing.Quantity = update.Quantity
	existing.Price = update.Price

	if photoName != "" {
		handle, err := s.media.Save(photoName, photo)
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		existing.Photo = handle
	}

	if err := s.productRepo.Update(existing); err != nil {
		if photoName != "" {
			if delErr := s.media.Delete(existing.Photo); delErr != nil {
				log.Printf("order %d: failed to clean up photo blob: %v", orderID, delErr)
			}
		}
		return nil, err
	}

	if photoName != "" && oldPhoto != "" && oldPhoto != existing.Photo {
		if err := s.media.Delete(oldPhoto); err != nil {
			log.Printf("order %d: failed to delete replaced photo blob: %v", orderID, err)
		}
	}
	return existing, nil
}

// DeleteProduct removes a product and its photo blob. Blob deletion is
// best-effort; a failure is logged but the request succeeds.
func (s *OrderProductService) DeleteProduct(orderID, productID uint) error {
	product, err := s.productRepo.GetByID(orderID, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(orderID, productID); err != nil {
		return err
	}
	if err := s.media.Delete(product.Photo); err != nil {
		log.Printf("order %d: failed to delete photo blob of product %d: %v", orderID, productID, err)
	}
	return nil
}
