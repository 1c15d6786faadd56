package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionDemo = "demo"
	SubscriptionPro  = "pro"
)

func IsValidSubscription(s string) bool {
	return s == SubscriptionDemo || s == SubscriptionPro
}

// Company is the tenant root: branches, role assignments, tasks and reports
// all hang off it.
type Company struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"not null;size:255" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	SubscriptionType string    `gorm:"size:30;not null;default:'demo'" json:"subscription_type"`
	BranchesLimit    int       `gorm:"not null;default:1" json:"branches_limit"`
	EmployeesLimit   int       `gorm:"not null;default:10" json:"employees_limit"`
	Active           bool      `gorm:"default:true" json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
