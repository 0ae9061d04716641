package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "workdesk_backend/internals/features/users/auth/controller"
	"workdesk_backend/internals/middlewares"
	authMiddleware "workdesk_backend/internals/middlewares/auth"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/logout", ctrl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
}
