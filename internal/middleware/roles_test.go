package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

func roleApp(guard fiber.Handler, identity *tenant.Identity) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		tenant.SetIdentity(c, identity)
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func requestStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestPlatformAdminRequired(t *testing.T) {
	companyID := uuid.New()
	cases := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, fiber.StatusOK},
		{models.RoleCompanyAdmin, fiber.StatusForbidden},
		{models.RoleManager, fiber.StatusForbidden},
		{models.RoleEmployee, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		identity := &tenant.Identity{UserID: uuid.New(), Role: tc.role, CompanyID: &companyID}
		app := roleApp(PlatformAdminRequired(), identity)
		if got := requestStatus(t, app); got != tc.want {
			t.Fatalf("role %q: expected %d, got %d", tc.role, tc.want, got)
		}
	}
}

func TestAdminRequired(t *testing.T) {
	companyID := uuid.New()
	cases := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, fiber.StatusOK},
		{models.RoleCompanyAdmin, fiber.StatusOK},
		{models.RoleManager, fiber.StatusForbidden},
		{models.RoleEmployee, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		identity := &tenant.Identity{UserID: uuid.New(), Role: tc.role, CompanyID: &companyID}
		app := roleApp(AdminRequired(), identity)
		if got := requestStatus(t, app); got != tc.want {
			t.Fatalf("role %q: expected %d, got %d", tc.role, tc.want, got)
		}
	}
}

func TestManagerRequired(t *testing.T) {
	companyID := uuid.New()
	cases := []struct {
		role string
		want int
	}{
		{models.RoleCompanyAdmin, fiber.StatusOK},
		{models.RoleManager, fiber.StatusOK},
		{models.RoleAssistantManager, fiber.StatusOK},
		{models.RoleEmployee, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		identity := &tenant.Identity{UserID: uuid.New(), Role: tc.role, CompanyID: &companyID}
		app := roleApp(ManagerRequired(), identity)
		if got := requestStatus(t, app); got != tc.want {
			t.Fatalf("role %q: expected %d, got %d", tc.role, tc.want, got)
		}
	}
}

func TestGuardsRejectUnresolvedIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", PlatformAdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	if got := requestStatus(t, app); got != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}
