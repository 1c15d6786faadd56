package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

var TaskStatuses = []string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

func IsValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidTaskPriority(p string) bool {
	for _, v := range TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Priority    string     `gorm:"size:20;not null;default:'medium'" json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	AssignedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"assigned_by"`
	Recurring   string     `gorm:"size:30" json:"recurring"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Company     *Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Branch      *Branch    `gorm:"foreignKey:BranchID" json:"-"`
}
