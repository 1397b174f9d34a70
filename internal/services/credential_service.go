package services

import (
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
)

// CredentialService handles business logic for device credentials.
type CredentialService struct {
	repo repositories.CredentialRepository
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(repo repositories.CredentialRepository) *CredentialService {
	return &CredentialService{
		repo: repo,
	}
}

// GetAllCredentials retrieves all stored credentials.
func (s *CredentialService) GetAllCredentials() ([]models.Credential, error) {
	return s.repo.GetAll()
}

// GetCredentialByID retrieves a single credential by its ID.
func (s *CredentialService) GetCredentialByID(id uint) (*models.Credential, error) {
	return s.repo.GetByID(id)
}

// CreateCredential creates a new credential.
func (s *CredentialService) CreateCredential(credential *models.Credential) error {
	return s.repo.Create(credential)
}

// UpdateCredential updates an existing credential.
func (s *CredentialService) UpdateCredential(credential *models.Credential) error {
	return s.repo.Update(credential)
}

// DeleteCredential deletes a credential by its ID.
func (s *CredentialService) DeleteCredential(id uint) error {
	return s.repo.Delete(id)
}
