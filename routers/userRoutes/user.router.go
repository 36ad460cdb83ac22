package userRoutes

import (
	userControllers "peakform/controllers/user"
	"peakform/middleware"
	userValidators "peakform/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminUserRoutes sets up the admin member management routes
func SetupAdminUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/user")

	adminGroup.Get("/list", middleware.JWTMiddleware, userValidators.UserList(), userControllers.AdminListUsers)
	adminGroup.Get("/:user_id/enrollments", middleware.JWTMiddleware, userValidators.UserID(), userControllers.AdminGetUserEnrollments)
}
