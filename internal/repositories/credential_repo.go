package repositories

import (
	"salesdesk/internal/models"
)

// CredentialRepository defines the interface for device credential data access.
type CredentialRepository interface {
	GetAll() ([]models.Credential, error)
	GetByID(id uint) (*models.Credential, error)
	Create(credential *models.Credential) error
	Update(credential *models.Credential) error
	Delete(id uint) error
}
