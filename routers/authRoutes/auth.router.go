package authRoutes

import (
	authControllers "peakform/controllers/auth"
	"peakform/middleware"
	authValidators "peakform/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, middleware.TouchLastSeen, authControllers.GetProfile)
}
