package dto

import "github.com/google/uuid"

type CreateEmployeeRequest struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	BranchID  *uuid.UUID `json:"branch_id"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type UpdateRoleRequest struct {
	Role     string     `json:"role"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// EmployeeResponse joins the profile with its role assignment.
type EmployeeResponse struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	AvatarURL string     `json:"avatar_url"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
}
