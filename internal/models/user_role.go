package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin            = "admin"
	RoleCompanyAdmin     = "company_admin"
	RoleManager          = "manager"
	RoleAssistantManager = "assistant_manager"
	RoleEmployee         = "employee"
	RoleJobSeeker        = "job_seeker"
)

var ValidRoles = []string{
	RoleAdmin,
	RoleCompanyAdmin,
	RoleManager,
	RoleAssistantManager,
	RoleEmployee,
	RoleJobSeeker,
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// UserRole assigns a role within a company (and optionally a branch) to a
// user. The schema allows several assignments per user; the rest of the code
// assumes at most one and resolves the first.
type UserRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Role      string     `gorm:"size:30;not null" json:"role"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	BranchID  *uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Company   *Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Branch    *Branch    `gorm:"foreignKey:BranchID" json:"-"`
}
