package programRoutes

import (
	controllers "peakform/controllers/program"
	"peakform/middleware"
	validators "peakform/validators/program"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminProgramRoutes sets up all admin program management routes
func SetupAdminProgramRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/program")

	// Program tree CRUD
	adminGroup.Post("/save", middleware.JWTMiddleware, validators.SaveProgram(), controllers.AdminSaveProgram)
	adminGroup.Get("/list", middleware.JWTMiddleware, controllers.AdminListPrograms)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.ProgramID(), controllers.AdminGetProgram)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.ProgramID(), controllers.AdminDeleteProgram)

	// Video management
	videoGroup := app.Group("/admin/video")
	videoGroup.Post("/:video_id/upload", middleware.JWTMiddleware, validators.VideoID(), controllers.AdminUploadVideo)
	videoGroup.Delete("/:video_id", middleware.JWTMiddleware, validators.VideoID(), controllers.AdminDeleteVideo)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, controllers.AdminDashboardStats)
}
