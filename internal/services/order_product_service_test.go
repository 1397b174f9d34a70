package services_test

import (
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/media"
	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

func newMediaStore(t *testing.T) *media.Store {
	t.Helper()
	store, err := media.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestAddProductStoresPhoto(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockOrderProductRepository)
	store := newMediaStore(t)
	service := services.NewOrderProductService(productRepo, orderRepo, store)

	orderRepo.On("GetByID", uint(1)).Return(&models.Order{ID: 1, Client: "Acme"}, nil).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.OrderProduct")).Return(nil).Once()

	product := &models.OrderProduct{Name: "Camera", Quantity: 1, Price: decimal.New(1000, -2)}
	err := service.AddProduct(1, product, "camera.png", strings.NewReader("png bytes"))
	require.NoError(t, err)

	assert.Equal(t, uint(1), product.OrderID)
	require.NotEmpty(t, product.Photo)
	_, statErr := os.Stat(store.Path(product.Photo))
	assert.NoError(t, statErr)
	productRepo.AssertExpectations(t)
}

func TestUpdateProductReplacesPhotoBlob(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockOrderProductRepository)
	store := newMediaStore(t)
	service := services.NewOrderProductService(productRepo, orderRepo, store)

	oldHandle, err := store.Save("old.png", strings.NewReader("old bytes"))
	require.NoError(t, err)

	existing := &models.OrderProduct{ID: 5, OrderID: 1, Name: "Camera", Quantity: 1, Price: decimal.New(1000, -2), Photo: oldHandle}
	productRepo.On("GetByID", uint(1), uint(5)).Return(existing, nil).Once()
	productRepo.On("Update", mock.AnythingOfType("*models.OrderProduct")).Return(nil).Once()

	update := &models.OrderProduct{Name: "Camera v2", Quantity: 2, Price: decimal.New(1200, -2)}
	updated, err := service.UpdateProduct(1, 5, update, "new.png", strings.NewReader("new bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Camera v2", updated.Name)
	assert.NotEqual(t, oldHandle, updated.Photo)

	// New blob exists, old blob is gone: no orphan left behind.
	_, statErr := os.Stat(store.Path(updated.Photo))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(store.Path(oldHandle))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdateProductWithoutPhotoKeepsBlob(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockOrderProductRepository)
	store := newMediaStore(t)
	service := services.NewOrderProductService(productRepo, orderRepo, store)

	handle, err := store.Save("photo.png", strings.NewReader("bytes"))
	require.NoError(t, err)

	existing := &models.OrderProduct{ID: 5, OrderID: 1, Name: "Camera", Quantity: 1, Price: decimal.New(1000, -2), Photo: handle}
	productRepo.On("GetByID", uint(1), uint(5)).Return(existing, nil).Once()
	productRepo.On("Update", mock.AnythingOfType("*models.OrderProduct")).Return(nil).Once()

	update := &models.OrderProduct{Name: "Camera", Quantity: 3, Price: decimal.New(1000, -2)}
	updated, err := service.UpdateProduct(1, 5, update, "", nil)
	require.NoError(t, err)

	assert.Equal(t, handle, updated.Photo)
	_, statErr := os.Stat(store.Path(handle))
	assert.NoError(t, statErr)
}

func TestDeleteProductRemovesBlob(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockOrderProductRepository)
	store := newMediaStore(t)
	service := services.NewOrderProductService(productRepo, orderRepo, store)

	handle, err := store.Save("photo.png", strings.NewReader("bytes"))
	require.NoError(t, err)

	existing := &models.OrderProduct{ID: 5, OrderID: 1, Name: "Camera", Photo: handle}
	productRepo.On("GetByID", uint(1), uint(5)).Return(existing, nil).Once()
	productRepo.On("Delete", uint(1), uint(5)).Return(nil).Once()

	require.NoError(t, service.DeleteProduct(1, 5))

	_, statErr := os.Stat(store.Path(handle))
	assert.True(t, os.IsNotExist(statErr))
	productRepo.AssertExpectations(t)
}
