package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoutes "workdesk_backend/internals/features/users/auth/routes"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authRoutes.AuthRoutes(api, db)
}
