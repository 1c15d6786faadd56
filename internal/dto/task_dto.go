package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	BranchID    *uuid.UUID `json:"branch_id"`
	Recurring   string     `json:"recurring"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Recurring   *string    `json:"recurring"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}
