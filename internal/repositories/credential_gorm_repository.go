package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"salesdesk/internal/models"
)

// GORMCredentialRepository is a GORM implementation of CredentialRepository.
type GORMCredentialRepository struct {
	db *gorm.DB
}

// NewGORMCredentialRepository creates a new instance of GORMCredentialRepository.
func NewGORMCredentialRepository(db *gorm.DB) *GORMCredentialRepository {
	return &GORMCredentialRepository{
		db: db,
	}
}

// GetAll retrieves all stored credentials.
func (r *GORMCredentialRepository) GetAll() ([]models.Credential, error) {
	var credentials []models.Credential
	if err := r.db.Order("id").Find(&credentials).Error; err != nil {
		return nil, fmt.Errorf("failed to get all credentials: %w", err)
	}
	return credentials, nil
}

// GetByID retrieves a single credential by its ID.
func (r *GORMCredentialRepository) GetByID(id uint) (*models.Credential, error) {
	var credential models.Credential
	if err := r.db.First(&credential, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("credential with ID %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get credential by ID %d: %w", id, err)
	}
	return &credential, nil
}

// Create creates a new credential.
func (r *GORMCredentialRepository) Create(credential *models.Credential) error {
	if err := r.db.Create(credential).Error; err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// Update saves all fields of an existing credential.
func (r *GORMCredentialRepository) Update(credential *models.Credential) error {
	res := r.db.Save(credential)
	if res.Error != nil {
		return fmt.Errorf("failed to update credential: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("credential with ID %d not found: %w", credential.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a credential by its ID.
func (r *GORMCredentialRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Credential{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete credential %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("credential with ID %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
