package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"salesdesk/internal/export"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

// ErrDispatchFailed is returned when the chat upload did not succeed.
var ErrDispatchFailed = errors.New("failed to send document to Telegram")

// DocumentRenderer renders an order into a scratch file and returns its path.
type DocumentRenderer interface {
	Render(order *models.Order, format export.Format) (string, error)
}

// DocumentDispatcher posts a rendered file to the chat channel. The boolean
// result reports whether the remote API accepted the upload.
type DocumentDispatcher interface {
	SendDocument(ctx context.Context, filePath string) (bool, error)
}

// ExportService renders an order and ships the document to the chat
// channel. The scratch file is removed after the attempt, success or not.
type ExportService struct {
	orderRepo  repositories.OrderRepository
	renderer   DocumentRenderer
	dispatcher DocumentDispatcher
}

// NewExportService creates a new ExportService.
func NewExportService(orderRepo repositories.OrderRepository, renderer DocumentRenderer, dispatcher DocumentDispatcher) *ExportService {
	return &ExportService{
		orderRepo:  orderRepo,
		renderer:   renderer,
		dispatcher: dispatcher,
	}
}

// ExportOrder renders the order in the requested format and sends it as a
// document attachment. One synchronous attempt; no retries.
func (s *ExportService) ExportOrder(ctx context.Context, id uint, format export.Format) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	path, err := s.renderer.Render(order, format)
	if err != nil {
		return fmt.Errorf("failed to render order %d: %w", id, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("order %d: failed to remove scratch file %s: %v", id, path, err)
		}
	}()

	ok, err := s.dispatcher.SendDocument(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	if !ok {
		return ErrDispatchFailed
	}
	return nil
}
