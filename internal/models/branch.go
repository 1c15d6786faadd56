package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch belongs to a company. Exactly one branch per company should carry
// IsHeadquarters; the swap is done atomically in BranchService.
type Branch struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Address        string    `gorm:"type:text" json:"address"`
	City           string    `gorm:"size:100" json:"city"`
	State          string    `gorm:"size:100" json:"state"`
	Country        string    `gorm:"size:100" json:"country"`
	ZipCode        string    `gorm:"size:20" json:"zip_code"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Email          string    `gorm:"size:255" json:"email"`
	IsHeadquarters bool      `gorm:"default:false" json:"is_headquarters"`
	Active         bool      `gorm:"default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Company        *Company  `gorm:"foreignKey:CompanyID" json:"-"`
}
