package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/services"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// List handles GET /branches: the caller's company branches, or an explicit
// company via ?company_id for platform admins.
func (h *BranchHandler) List(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	companyID := identity.CompanyID
	if raw := c.Query("company_id"); raw != "" && identity.IsPlatformAdmin() {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid company ID",
			})
		}
		companyID = &parsed
	}
	if companyID == nil {
		return c.JSON([]interface{}{})
	}

	branches, err := h.branchService.ListByCompany(*companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch branches",
		})
	}
	return c.JSON(branches)
}

func (h *BranchHandler) Create(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	branch, err := h.branchService.Create(identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBranchFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrCompanyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrBranchLimitReached):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create branch",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

func (h *BranchHandler) Update(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid branch ID",
		})
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	branch, err := h.branchService.Update(identity, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBranchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrBranchFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrHeadquartersDemotion):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update branch",
		})
	}
	return c.JSON(branch)
}

// SetHeadquarters handles PUT /branches/:id/headquarters. The demote and
// promote run in one transaction.
func (h *BranchHandler) SetHeadquarters(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid branch ID",
		})
	}

	branch, err := h.branchService.SetHeadquarters(identity, id)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to set headquarters",
		})
	}
	return c.JSON(branch)
}

func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid branch ID",
		})
	}

	if err := h.branchService.Delete(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrBranchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrLastBranch),
			errors.Is(err, services.ErrHeadquartersBranch),
			errors.Is(err, services.ErrBranchConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete branch",
		})
	}
	return c.JSON(fiber.Map{"message": "Branch deleted"})
}
