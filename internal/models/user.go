package models

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors the identity the cloud gateway asserts via X-User-*
// headers. A row is created the first time an owner saves to the
// library, giving entries a stable local record to hang off.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	GatewayID string         `gorm:"uniqueIndex;not null" json:"gateway_id"`
	Email     string         `gorm:"index" json:"email"`
	Name      string         `json:"name"`
}
