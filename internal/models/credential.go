package models

import "time"

// Credential stores per-organization device passwords (NVR and camera).
// The values are opaque secrets kept as-is; they are not user credentials
// and are not hashed.
type Credential struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrganizationName string    `json:"organization_name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	NVRPassword      string    `json:"nvr_password" gorm:"type:varchar(255)"`
	CameraPassword   string    `json:"camera_password" gorm:"type:varchar(255)"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
