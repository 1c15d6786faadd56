package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

// PlatformAdminRequired allows only the platform operator role through.
// Company admins manage their own company through the scoped endpoints, not
// the companies panel.
func PlatformAdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := tenant.GetIdentity(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !identity.IsPlatformAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}

// AdminRequired allows platform and company admins through.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := tenant.GetIdentity(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !identity.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}

// ManagerRequired allows admins and branch managers through.
func ManagerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := tenant.GetIdentity(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !identity.IsAdmin() && !identity.IsManager() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Manager access required",
			})
		}
		return c.Next()
	}
}
