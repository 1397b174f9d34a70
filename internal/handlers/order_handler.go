package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"salesdesk/internal/export"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
	"salesdesk/internal/services"
)

// OrderHandler handles HTTP requests for orders, their lifecycle and the
// Telegram export.
type OrderHandler struct {
	service       *services.OrderService
	exportService *services.ExportService
	validate      *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, exportService *services.ExportService) *OrderHandler {
	return &OrderHandler{
		service:       service,
		exportService: exportService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleList)
	orderRoutes.Post("/", h.HandleCreate)
	orderRoutes.Get("/:id", h.HandleDetail)
	orderRoutes.Put("/:id", h.HandleUpdate)
	orderRoutes.Delete("/:id", h.HandleDelete)
	orderRoutes.Patch("/:id/confirm", h.HandleConfirm)
	orderRoutes.Patch("/:id/reject", h.HandleReject)
	orderRoutes.Get("/:id/export_to_telegram", h.HandleExport)
	orderRoutes.Post("/:id/export_to_telegram", h.HandleExport)

	router.Get("/confirmed-orders", h.HandleConfirmedReport)
}

// orderRequest is the write payload for orders.
type orderRequest struct {
	Client             string              `json:"client" validate:"required,max=100"`
	VAT                decimal.NullDecimal `json:"vat"`
	AdditionalExpenses decimal.NullDecimal `json:"additional_expenses"`
	IsConfirmed        bool                `json:"is_confirmed"`
	IsRejected         bool                `json:"is_rejected"`
}

// Percentages are stored as decimal(5,2), so 999.99 is the ceiling.
var maxPercent = decimal.RequireFromString("999.99")

func validPercent(d decimal.NullDecimal) bool {
	if !d.Valid {
		return true
	}
	return !d.Decimal.IsNegative() && d.Decimal.LessThanOrEqual(maxPercent)
}

// HandleList retrieves all orders with pricing-enriched fields.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, newOrderResponse(&orders[i], now))
	}
	return c.JSON(responses)
}

// HandleCreate creates a new order.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	req, ok := h.parseOrderRequest(c)
	if !ok {
		return nil
	}

	order := &models.Order{
		Client:             req.Client,
		VAT:                req.VAT,
		AdditionalExpenses: req.AdditionalExpenses,
		IsConfirmed:        req.IsConfirmed,
		IsRejected:         req.IsRejected,
	}
	if err := h.service.CreateOrder(order); err != nil {
		log.Printf("Error creating order: %v", err)
		return respondOrderError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(newOrderResponse(order, time.Now()))
}

// HandleDetail retrieves a single order with its products and totals.
func (h *OrderHandler) HandleDetail(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		log.Printf("Error getting order by ID %d: %v", id, err)
		return respondOrderError(c, err, "Could not retrieve order")
	}
	return c.JSON(newOrderDetailResponse(order, time.Now()))
}

// HandleUpdate replaces the fields of an existing order.
func (h *OrderHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	req, ok := h.parseOrderRequest(c)
	if !ok {
		return nil
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return respondOrderError(c, err, "Could not retrieve order")
	}

	order.Client = req.Client
	order.VAT = req.VAT
	order.AdditionalExpenses = req.AdditionalExpenses
	order.IsConfirmed = req.IsConfirmed
	order.IsRejected = req.IsRejected

	if err := h.service.UpdateOrder(order); err != nil {
		log.Printf("Error updating order %d: %v", id, err)
		return respondOrderError(c, err, "Could not update order")
	}
	return c.JSON(newOrderResponse(order, time.Now()))
}

// HandleDelete removes an order, its products and their photo blobs.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if err := h.service.DeleteOrder(id); err != nil {
		log.Printf("Error deleting order %d: %v", id, err)
		return respondOrderError(c, err, "Could not delete order")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleConfirm confirms an order. Confirming twice is a no-op; confirming
// a rejected order fails with 400.
func (h *OrderHandler) HandleConfirm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if _, err := h.service.ConfirmOrder(id); err != nil {
		log.Printf("Error confirming order %d: %v", id, err)
		return respondOrderError(c, err, "Could not confirm order")
	}
	return c.JSON(fiber.Map{"status": "order confirmed"})
}

// HandleReject rejects an order. Rejecting twice is a no-op; rejecting a
// confirmed order fails with 400.
func (h *OrderHandler) HandleReject(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if _, err := h.service.RejectOrder(id); err != nil {
		log.Printf("Error rejecting order %d: %v", id, err)
		return respondOrderError(c, err, "Could not reject order")
	}
	return c.JSON(fiber.Map{"status": "order rejected"})
}

// HandleExport renders the order in the requested format and sends it to
// the configured Telegram chat.
func (h *OrderHandler) HandleExport(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	format := export.Format(c.Query("file_type", string(export.FormatExcel)))
	err := h.exportService.ExportOrder(c.UserContext(), id, format)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"status": "success", "message": "Order sent to Telegram"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Order not found"})
	case errors.Is(err, export.ErrUnknownFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	default:
		log.Printf("Error exporting order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to send order to Telegram"})
	}
}

// HandleConfirmedReport lists confirmed orders created in the inclusive
// date range and the sum of their totals with VAT.
func (h *OrderHandler) HandleConfirmedReport(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "start_date must be a valid YYYY-MM-DD date",
		})
	}
	endDay, err := parseDate(c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "end_date must be a valid YYYY-MM-DD date",
		})
	}
	// end_date is inclusive up to the last millisecond of that day.
	end := endDay.Add(24*time.Hour - time.Millisecond)

	orders, totalSum, err := h.service.ConfirmedOrdersBetween(start, end)
	if err != nil {
		log.Printf("Error listing confirmed orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve confirmed orders",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, newOrderResponse(&orders[i], now))
	}
	return c.JSON(fiber.Map{
		"orders":    responses,
		"total_sum": totalSum,
	})
}

// parseOrderRequest reads and validates the order payload. On failure the
// 400 response is already written and the second result is false; the
// handler must return nil without touching the request.
func (h *OrderHandler) parseOrderRequest(c *fiber.Ctx) (*orderRequest, bool) {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
		return nil, false
	}

	if !validPercent(req.VAT) || !validPercent(req.AdditionalExpenses) {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "vat and additional_expenses must be between 0 and 999.99",
		})
		return nil, false
	}

	if req.IsConfirmed && req.IsRejected {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": models.ErrConflictingState.Error(),
		})
		return nil, false
	}
	return &req, true
}

// respondOrderError maps domain errors to HTTP statuses: missing rows to
// 404, lifecycle conflicts to 400, everything else to 500.
func respondOrderError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrConfirmRejected),
		errors.Is(err, repositories.ErrRejectConfirmed),
		errors.Is(err, models.ErrConflictingState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// parseID reads a numeric route parameter. On failure the 400 response is
// already written and the second result is false.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Invalid %s parameter", param),
		})
		return 0, false
	}
	return uint(id), true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
