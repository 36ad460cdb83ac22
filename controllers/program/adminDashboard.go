package controllers

import (
	"time"

	"peakform/config"
	"peakform/database"
	"peakform/middleware"
	"peakform/models"
	programModels "peakform/models/program"
	"peakform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboardStats gets dashboard statistics
func AdminDashboardStats(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	var totalUsers, totalPrograms, totalEnrollments, completedEnrollments, signupsThisMonth int64

	database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	database.Database.Db.Model(&programModels.Program{}).Where("is_active = ?", true).Count(&totalPrograms)
	database.Database.Db.Model(&programModels.Enrollment{}).Count(&totalEnrollments)
	database.Database.Db.Model(&programModels.Enrollment{}).Where("progress = ?", 100).Count(&completedEnrollments)
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ? AND created_at >= ?", false, now.BeginningOfMonth()).Count(&signupsThisMonth)

	// Prefer the cached count; fall back to a live query until the scheduler primes it
	activeMembers, primed := utils.ActiveMemberCount()
	if !primed {
		cutoff := time.Now().Add(-time.Duration(config.AppConfig.ActiveWindowMinutes) * time.Minute)
		database.Database.Db.Model(&models.User{}).
			Where("is_deleted = ? AND last_seen_at >= ?", false, cutoff).Count(&activeMembers)
	}

	// Get recent enrollments
	type RecentEnrollment struct {
		UserName    string    `json:"user_name"`
		ProgramName string    `json:"program_name"`
		Progress    float64   `json:"progress"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []programModels.Enrollment
	database.Database.Db.Preload("Program").Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		recent[i] = RecentEnrollment{
			UserName:    enrolledUser.Name,
			ProgramName: e.Program.Title,
			Progress:    e.Progress,
			EnrolledAt:  e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_users":           totalUsers,
			"total_programs":        totalPrograms,
			"total_enrollments":     totalEnrollments,
			"completed_enrollments": completedEnrollments,
			"signups_this_month":    signupsThisMonth,
			"active_members":        activeMembers,
		},
		"recent_enrollments": recent,
	})
}
