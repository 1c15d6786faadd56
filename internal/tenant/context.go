package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// SetIdentity stores the resolved identity in Fiber context locals.
func SetIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}

// GetIdentity returns the identity resolved by the identity middleware.
func GetIdentity(c *fiber.Ctx) (*Identity, error) {
	identity, ok := c.Locals(identityKey).(*Identity)
	if !ok || identity == nil {
		return nil, errors.New("identity not resolved")
	}
	return identity, nil
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetEmail extracts the email claim, if present.
func GetEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
