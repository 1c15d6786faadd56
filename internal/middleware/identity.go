package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

// ResolveIdentity runs after JWTProtected and resolves the caller's role
// assignment exactly once per request. Handlers and services read the
// resulting identity from locals instead of re-querying user_roles.
func ResolveIdentity(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		identity := tenant.Resolve(db, userID, tenant.GetEmail(c))
		tenant.SetIdentity(c, identity)
		return c.Next()
	}
}
