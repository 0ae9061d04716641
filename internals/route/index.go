package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"workdesk_backend/internals/constants"
	"workdesk_backend/internals/features/hr/payments/service"
	"workdesk_backend/internals/helpers/storage"
	authMiddleware "workdesk_backend/internals/middlewares/auth"
	routeDetails "workdesk_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *service.PaymentService, store storage.DocumentStore) {
	startTime = time.Now()

	BaseRoutes(app)

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	// Privileged surface. Every route under /api/a requires an admin
	// access token.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(
			"You are not allowed to manage payroll",
			constants.AdminOnly...,
		),
	)
	routeDetails.HrAdminRoutes(admin, db, svc, store)

	// Self-scoped surface. Any authenticated account; visibility is
	// narrowed to the caller's own employee record in the handlers.
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.HrUserRoutes(user, svc)
}
