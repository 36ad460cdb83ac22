package programRoutes

import (
	controllers "peakform/controllers/program"
	"peakform/middleware"
	validators "peakform/validators/program"

	"github.com/gofiber/fiber/v2"
)

// SetupProgramRoutes sets up all subscriber-facing program routes
func SetupProgramRoutes(app *fiber.App) {
	userGroup := app.Group("/program")

	// Program discovery
	userGroup.Get("/available", middleware.JWTMiddleware, middleware.TouchLastSeen, controllers.GetAvailablePrograms)
	userGroup.Get("/:id", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.ProgramID(), controllers.GetProgramTree)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.EnrollProgram(), controllers.EnrollInProgram)

	// Dashboard
	enrollGroup := app.Group("/enrollment")
	enrollGroup.Get("/list", middleware.JWTMiddleware, middleware.TouchLastSeen, controllers.GetMyPrograms)
	enrollGroup.Get("/:enrollment_id/courses", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.EnrollmentID(), controllers.GetProgramCourses)

	// Course viewing and completion
	courseGroup := app.Group("/course")
	courseGroup.Get("/:course_id", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.CourseID(), controllers.GetCourseDetail)
	courseGroup.Post("/:course_id/complete", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.CourseID(), controllers.MarkCourseComplete)

	// Video watch heartbeats
	videoGroup := app.Group("/video")
	videoGroup.Post("/progress", middleware.JWTMiddleware, middleware.TouchLastSeen, validators.VideoProgress(), controllers.UpdateVideoProgress)
}
