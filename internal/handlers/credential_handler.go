package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"salesdesk/internal/models"
	"salesdesk/internal/services"
)

// CredentialHandler handles HTTP requests for device credentials.
type CredentialHandler struct {
	service  *services.CredentialService
	validate *validator.Validate
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(service *services.CredentialService) *CredentialHandler {
	return &CredentialHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the credential routes with the Fiber app.
func (h *CredentialHandler) RegisterRoutes(router fiber.Router) {
	credentialRoutes := router.Group("/passwords")
	credentialRoutes.Get("/", h.HandleList)
	credentialRoutes.Post("/", h.HandleCreate)
	credentialRoutes.Get("/:id", h.HandleDetail)
	credentialRoutes.Put("/:id", h.HandleUpdate)
	credentialRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList retrieves all stored credentials.
func (h *CredentialHandler) HandleList(c *fiber.Ctx) error {
	credentials, err := h.service.GetAllCredentials()
	if err != nil {
		log.Printf("Error getting all credentials: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve credentials",
			"error":   err.Error(),
		})
	}
	return c.JSON(credentials)
}

// HandleCreate stores a new credential record.
func (h *CredentialHandler) HandleCreate(c *fiber.Ctx) error {
	credential, ok := h.parseCredential(c)
	if !ok {
		return nil
	}

	if err := h.service.CreateCredential(credential); err != nil {
		log.Printf("Error creating credential: %v", err)
		return respondOrderError(c, err, "Could not create credential")
	}
	return c.Status(fiber.StatusCreated).JSON(credential)
}

// HandleDetail retrieves a single credential.
func (h *CredentialHandler) HandleDetail(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	credential, err := h.service.GetCredentialByID(id)
	if err != nil {
		log.Printf("Error getting credential %d: %v", id, err)
		return respondOrderError(c, err, "Could not retrieve credential")
	}
	return c.JSON(credential)
}

// HandleUpdate replaces the fields of an existing credential.
func (h *CredentialHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	update, ok := h.parseCredential(c)
	if !ok {
		return nil
	}

	credential, err := h.service.GetCredentialByID(id)
	if err != nil {
		return respondOrderError(c, err, "Could not retrieve credential")
	}

	credential.OrganizationName = update.OrganizationName
	credential.NVRPassword = update.NVRPassword
	credential.CameraPassword = update.CameraPassword

	if err := h.service.UpdateCredential(credential); err != nil {
		log.Printf("Error updating credential %d: %v", id, err)
		return respondOrderError(c, err, "Could not update credential")
	}
	return c.JSON(credential)
}

// HandleDelete removes a credential.
func (h *CredentialHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if err := h.service.DeleteCredential(id); err != nil {
		log.Printf("Error deleting credential %d: %v", id, err)
		return respondOrderError(c, err, "Could not delete credential")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCredential reads and validates the credential payload. On failure
// the 400 response is already written and the second result is false.
func (h *CredentialHandler) parseCredential(c *fiber.Ctx) (*models.Credential, bool) {
	var credential models.Credential
	if err := c.BodyParser(&credential); err != nil {
		log.Printf("Error parsing credential body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return nil, false
	}

	if err := h.validate.Struct(credential); err != nil {
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
	return &credential, true
}
