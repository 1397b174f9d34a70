package services_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/export"
	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

func scratchFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order-7.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook"), 0o644))
	return path
}

func TestExportOrderSuccess(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	renderer := new(MockRenderer)
	dispatcher := new(MockDispatcher)
	service := services.NewExportService(orderRepo, renderer, dispatcher)

	order := &models.Order{ID: 7, Client: "Acme"}
	path := scratchFile(t)

	orderRepo.On("GetByID", uint(7)).Return(order, nil).Once()
	renderer.On("Render", order, export.FormatExcel).Return(path, nil).Once()
	dispatcher.On("SendDocument", context.Background(), path).Return(true, nil).Once()

	err := service.ExportOrder(context.Background(), 7, export.FormatExcel)
	assert.NoError(t, err)

	// Scratch file is removed after the attempt.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	orderRepo.AssertExpectations(t)
	renderer.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestExportOrderDispatchRejected(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	renderer := new(MockRenderer)
	dispatcher := new(MockDispatcher)
	service := services.NewExportService(orderRepo, renderer, dispatcher)

	order := &models.Order{ID: 7, Client: "Acme"}
	path := scratchFile(t)

	orderRepo.On("GetByID", uint(7)).Return(order, nil).Once()
	renderer.On("Render", order, export.FormatPDF).Return(path, nil).Once()
	dispatcher.On("SendDocument", context.Background(), path).Return(false, nil).Once()

	err := service.ExportOrder(context.Background(), 7, export.FormatPDF)
	assert.ErrorIs(t, err, services.ErrDispatchFailed)

	// The scratch file is cleaned up even when the upload failed.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportOrderDispatchTransportError(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	renderer := new(MockRenderer)
	dispatcher := new(MockDispatcher)
	service := services.NewExportService(orderRepo, renderer, dispatcher)

	order := &models.Order{ID: 7, Client: "Acme"}
	path := scratchFile(t)

	orderRepo.On("GetByID", uint(7)).Return(order, nil).Once()
	renderer.On("Render", order, export.FormatExcel).Return(path, nil).Once()
	dispatcher.On("SendDocument", context.Background(), path).Return(false, fmt.Errorf("timeout")).Once()

	err := service.ExportOrder(context.Background(), 7, export.FormatExcel)
	assert.ErrorIs(t, err, services.ErrDispatchFailed)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportOrderRenderFailure(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	renderer := new(MockRenderer)
	dispatcher := new(MockDispatcher)
	service := services.NewExportService(orderRepo, renderer, dispatcher)

	order := &models.Order{ID: 7, Client: "Acme"}

	orderRepo.On("GetByID", uint(7)).Return(order, nil).Once()
	renderer.On("Render", order, export.FormatExcel).Return("", fmt.Errorf("disk full")).Once()

	err := service.ExportOrder(context.Background(), 7, export.FormatExcel)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render")
	dispatcher.AssertNotCalled(t, "SendDocument")
}

func TestExportOrderNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	renderer := new(MockRenderer)
	dispatcher := new(MockDispatcher)
	service := services.NewExportService(orderRepo, renderer, dispatcher)

	orderRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("order with ID 99 not found")).Once()

	err := service.ExportOrder(context.Background(), 99, export.FormatExcel)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	renderer.AssertNotCalled(t, "Render")
}
