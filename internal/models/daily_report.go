package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyReport is one user's summary for one working day. One report per user
// per day is enforced in ReportService, not by a database constraint.
type DailyReport struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	BranchID         *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id"`
	Date             time.Time      `gorm:"not null;index" json:"date"`
	Summary          string         `gorm:"type:text;not null" json:"summary"`
	HoursWorked      float64        `gorm:"not null" json:"hours_worked"`
	TasksCompleted   datatypes.JSON `gorm:"type:jsonb" json:"tasks_completed"`
	Challenges       string         `gorm:"type:text" json:"challenges"`
	PlansForTomorrow string         `gorm:"type:text" json:"plans_for_tomorrow"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Company          *Company       `gorm:"foreignKey:CompanyID" json:"-"`
	Branch           *Branch        `gorm:"foreignKey:BranchID" json:"-"`
}
