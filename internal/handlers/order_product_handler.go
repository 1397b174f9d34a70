package handlers

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

// OrderProductHandler handles HTTP requests for the line items of an order.
type OrderProductHandler struct {
	service  *services.OrderProductService
	validate *validator.Validate
}

// NewOrderProductHandler creates a new OrderProductHandler.
func NewOrderProductHandler(service *services.OrderProductService) *OrderProductHandler {
	return &OrderProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *OrderProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/orders/:id/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:pid", h.HandleUpdate)
	productRoutes.Delete("/:pid", h.HandleDelete)
}

// productRequest is the write payload for line items. The photo travels as
// a multipart file part, never in the JSON body. A zero quantity is valid.
type productRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Quantity uint            `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// HandleList returns the products of an order together with the sum of the
// line totals. An order without products reads as 404.
func (h *OrderProductHandler) HandleList(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	products, err := h.service.ListByOrder(orderID)
	if err != nil {
		log.Printf("Error listing products of order %d: %v", orderID, err)
		return respondOrderError(c, err, "Could not retrieve products")
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No products found for this order",
		})
	}

	total := decimal.Zero
	responses := make([]OrderProductResponse, 0, len(products))
	for i := range products {
		total = total.Add(products[i].TotalPrice())
		responses = append(responses, newOrderProductResponse(&products[i]))
	}
	return c.JSON(fiber.Map{
		"products":          responses,
		"total_order_price": total.StringFixed(2),
	})
}

// HandleCreate adds a product to an order.
func (h *OrderProductHandler) HandleCreate(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	req, photoName, photo, cleanup, ok := h.parseProductRequest(c)
	if !ok {
		return nil
	}
	defer cleanup()

	product := &models.OrderProduct{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	if err := h.service.AddProduct(orderID, product, photoName, photo); err != nil {
		log.Printf("Error adding product to order %d: %v", orderID, err)
		return respondOrderError(c, err, "Could not add product")
	}
	return c.Status(fiber.StatusCreated).JSON(newOrderProductResponse(product))
}

// HandleUpdate edits a product of an order. Sending a new photo replaces
// the stored one.
func (h *OrderProductHandler) HandleUpdate(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	productID, ok := parseID(c, "pid")
	if !ok {
		return nil
	}

	req, photoName, photo, cleanup, ok := h.parseProductRequest(c)
	if !ok {
		return nil
	}
	defer cleanup()

	update := &models.OrderProduct{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	updated, err := h.service.UpdateProduct(orderID, productID, update, photoName, photo)
	if err != nil {
		log.Printf("Error updating product %d of order %d: %v", productID, orderID, err)
		return respondOrderError(c, err, "Could not update product")
	}
	return c.JSON(newOrderProductResponse(updated))
}

// HandleDelete removes a product and its photo.
func (h *OrderProductHandler) HandleDelete(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	productID, ok := parseID(c, "pid")
	if !ok {
		return nil
	}

	if err := h.service.DeleteProduct(orderID, productID); err != nil {
		log.Printf("Error deleting product %d of order %d: %v", productID, orderID, err)
		return respondOrderError(c, err, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductRequest reads the product fields from either a multipart form
// (with an optional photo part) or a JSON body. On failure the 400 response
// is already written and the last result is false. The returned cleanup
// closes the photo stream and must always be deferred.
func (h *OrderProductHandler) parseProductRequest(c *fiber.Ctx) (*productRequest, string, io.Reader, func(), bool) {
	noop := func() {}
	var req productRequest
	var photoName string
	var photo io.Reader
	cleanup := noop

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		quantity, err := strconv.ParseUint(c.FormValue("quantity"), 10, 32)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "quantity must be a non-negative integer",
			})
			return nil, "", nil, noop, false
		}
		price, err := decimal.NewFromString(c.FormValue("price"))
		if err != nil || price.IsNegative() {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "price must be a non-negative decimal",
			})
			return nil, "", nil, noop, false
		}
		req = productRequest{
			Name:     c.FormValue("name"),
			Quantity: uint(quantity),
			Price:    price,
		}

		if fileHeader, err := c.FormFile("photo"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Could not read uploaded photo",
					"error":   err.Error(),
				})
				return nil, "", nil, noop, false
			}
			photoName = fileHeader.Filename
			photo = file
			cleanup = func() { file.Close() }
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing product request body: %v", err)
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
			return nil, "", nil, noop, false
		}
		if req.Price.IsNegative() {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "price must be a non-negative decimal",
			})
			return nil, "", nil, noop, false
		}
	}

	if err := h.validate.Struct(req); err != nil {
		cleanup()
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
		return nil, "", nil, noop, false
	}
	return &req, photoName, photo, cleanup, true
}
