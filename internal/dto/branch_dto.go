package dto

import "github.com/google/uuid"

type CreateBranchRequest struct {
	CompanyID      uuid.UUID `json:"company_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Country        string    `json:"country"`
	ZipCode        string    `json:"zip_code"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	IsHeadquarters bool      `json:"is_headquarters"`
}

type UpdateBranchRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	Country        *string `json:"country"`
	ZipCode        *string `json:"zip_code"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsHeadquarters *bool   `json:"is_headquarters"`
	Active         *bool   `json:"active"`
}
