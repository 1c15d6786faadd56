package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/config"
	"github.com/stafflink-app/stafflink-backend/internal/handlers"
	"github.com/stafflink-app/stafflink-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	companyHandler *handlers.CompanyHandler,
	branchHandler *handlers.BranchHandler,
	employeeHandler *handlers.EmployeeHandler,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
	messageHandler *handlers.MessageHandler,
	dashboardHandler *handlers.DashboardHandler,
	realtimeHandler *handlers.RealtimeHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Everything below requires a valid JWT and a resolved identity.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.ResolveIdentity(db))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Companies, platform admin only
	companies := protected.Group("/companies", middleware.PlatformAdminRequired())
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.Get)
	companies.Post("/", companyHandler.Create)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Branches: reads for everyone in the company, writes for admins
	protected.Get("/branches", branchHandler.List)
	branches := protected.Group("/branches", middleware.AdminRequired())
	branches.Post("/", branchHandler.Create)
	branches.Put("/:id", branchHandler.Update)
	branches.Put("/:id/headquarters", branchHandler.SetHeadquarters)
	branches.Delete("/:id", branchHandler.Delete)

	// Employees
	protected.Get("/employees", employeeHandler.List)
	protected.Post("/employees", middleware.ManagerRequired(), employeeHandler.Create)
	protected.Put("/employees/:id/profile", employeeHandler.UpdateProfile)
	protected.Put("/employees/:id/role", middleware.AdminRequired(), employeeHandler.UpdateRole)
	protected.Delete("/employees/:id", middleware.AdminRequired(), employeeHandler.Remove)

	// Tasks
	protected.Get("/tasks", taskHandler.List)
	protected.Post("/tasks", middleware.ManagerRequired(), taskHandler.Create)
	protected.Patch("/tasks/:id/status", taskHandler.UpdateStatus)
	protected.Put("/tasks/:id", middleware.ManagerRequired(), taskHandler.Update)
	protected.Delete("/tasks/:id", taskHandler.Delete)

	// Daily reports
	protected.Get("/reports", reportHandler.List)
	protected.Post("/reports", reportHandler.Create)
	protected.Get("/reports/today", reportHandler.Today)
	protected.Get("/reports/team", middleware.ManagerRequired(), reportHandler.Team)

	// Messaging
	protected.Get("/messages/contacts", messageHandler.Contacts)
	protected.Get("/messages/unread", messageHandler.Unread)
	protected.Get("/messages/:contactId", messageHandler.Thread)
	protected.Post("/messages", messageHandler.Send)

	// Dashboard
	protected.Get("/dashboard", dashboardHandler.Overview)

	// Realtime change feed
	protected.Get("/ws", realtimeHandler.Upgrade, realtimeHandler.Stream())
}
