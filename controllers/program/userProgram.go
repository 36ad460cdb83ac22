package controllers

import (
	"errors"
	"log"

	"peakform/database"
	"peakform/middleware"
	"peakform/models"
	programModels "peakform/models/program"
	programService "peakform/services/program"
	"peakform/utils"
	programValidator "peakform/validators/program"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailablePrograms lists active programs the user has not enrolled in yet
func GetAvailablePrograms(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	programs := programService.GetAvailablePrograms(database.Database.Db, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", fiber.Map{
		"programs": programs,
		"total":    len(programs),
	})
}

// GetMyPrograms lists the user's enrollments with program summaries
func GetMyPrograms(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments := programService.GetUserEnrolledPrograms(database.Database.Db, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}

// EnrollInProgram enrolls the user and seeds their course progress sequence
func EnrollInProgram(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	programID := c.Locals("programID").(uuid.UUID)
	reqData, _ := c.Locals("validatedEnrollment").(*programValidator.EnrollmentRequest)

	cost := 0.0
	paymentStatus := ""
	if reqData != nil {
		cost = reqData.Cost
		paymentStatus = reqData.PaymentStatus
	}

	enrollmentID, err := programService.EnrollUserInProgram(database.Database.Db, userID, programID, cost, paymentStatus)
	if err != nil {
		if errors.Is(err, programService.ErrProgramNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found or not active!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in program!", nil)
	}

	var prog programModels.Program
	if err := database.Database.Db.Where("id = ?", programID).First(&prog).Error; err == nil {
		go utils.SendEnrollmentEmail(user.Email, user.Name, prog.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in program successfully!", fiber.Map{
		"enrollment_id": enrollmentID,
	})
}

// GetProgramTree returns the full program structure for an enrolled user
func GetProgramTree(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	programID := c.Locals("programID").(uuid.UUID)

	// Only enrolled users can see the course structure
	var enrollment programModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND program_id = ?", userID, programID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this program first!", nil)
	}

	graph := programService.LoadProgram(database.Database.Db, programID)
	if graph == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program fetched successfully!", fiber.Map{
		"program":    graph,
		"enrollment": enrollment,
	})
}

// GetProgramCourses returns the user's course sequence with derived lock state
func GetProgramCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uuid.UUID)

	courses := programService.LoadCoursesWithLockState(database.Database.Db, userID, enrollmentID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourseDetail returns one unlocked course with its videos and the user's
// watch progress. Locked courses return 403 until the previous course is done.
func GetCourseDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uuid.UUID)

	var progress programModels.CourseProgress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this program first!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	// Sequential unlock: the previous course in the sequence must be at 100%
	if progress.Position > 0 {
		var previous programModels.CourseProgress
		if err := database.Database.Db.Where("enrollment_id = ? AND position = ?", progress.EnrollmentID, progress.Position-1).
			First(&previous).Error; err != nil || previous.Progress != 100 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous course to unlock this one!", nil)
		}
	}

	var course programModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var videos []programModels.Video
	database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index asc").Find(&videos)

	type VideoWithProgress struct {
		programModels.Video
		Duration         string `json:"duration"`
		WatchTimeSeconds int    `json:"watch_time_seconds"`
		IsWatched        bool   `json:"is_watched"`
	}

	result := make([]VideoWithProgress, len(videos))
	for i, video := range videos {
		result[i] = VideoWithProgress{
			Video:    video,
			Duration: programService.SecondsToDuration(video.DurationSeconds),
		}

		var watch programModels.VideoProgress
		if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userID, video.ID).First(&watch).Error; err == nil {
			result[i].WatchTimeSeconds = watch.WatchTimeSeconds
			result[i].IsWatched = watch.IsCompleted
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"videos":   result,
		"progress": progress,
	})
}

// MarkCourseComplete completes a course and reports the enrollment to return to
func MarkCourseComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uuid.UUID)

	enrollmentID, err := programService.MarkCourseComplete(database.Database.Db, courseID, userID)
	if err != nil {
		if errors.Is(err, programService.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course!", nil)
	}

	// Congratulate on finishing the whole program
	var enrollment programModels.Enrollment
	if err := database.Database.Db.Preload("Program").Where("id = ?", enrollmentID).First(&enrollment).Error; err == nil {
		if enrollment.Progress == 100 {
			go utils.SendProgramCompletionEmail(user.Email, user.Name, enrollment.Program.Title)
		}
	} else {
		log.Printf("Error loading enrollment %s after completion: %v", enrollmentID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course completed successfully!", fiber.Map{
		"enrollment_id": enrollmentID,
	})
}

// UpdateVideoProgress records a watch-time heartbeat for a video
func UpdateVideoProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(uuid.UUID)
	watchTimeSeconds := c.Locals("watchTimeSeconds").(int)
	isCompleted := c.Locals("isCompleted").(bool)

	if !programService.UpdateVideoProgress(database.Database.Db, userID, videoID, watchTimeSeconds, isCompleted) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to update video progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video progress updated!", nil)
}
