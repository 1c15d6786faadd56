package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its ID with the auth User. It is created at sign-up and is
// never hard-deleted: removing a role assignment leaves the profile row in
// place.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
