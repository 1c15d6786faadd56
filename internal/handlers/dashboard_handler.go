package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/services"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview handles GET /dashboard. The shape of the payload depends on the
// caller's role: admins get company stats on top of the common aggregates.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	overview, err := h.dashboardService.Overview(identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build dashboard",
		})
	}
	return c.JSON(overview)
}
