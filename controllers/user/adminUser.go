package userController

import (
	"time"

	"peakform/config"
	"peakform/database"
	"peakform/middleware"
	"peakform/models"
	programService "peakform/services/program"
	userService "peakform/services/user"
	userValidator "peakform/validators/user"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers lists members with role and recent-activity filters
func AdminListUsers(c *fiber.Ctx) error {
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

	reqData, _ := c.Locals("validatedUserList").(*userValidator.UserListQuery)

	page := 1
	limit := 10
	filter := userService.ListFilter{Page: page, Limit: limit}
	if reqData != nil {
		if reqData.Page != nil && *reqData.Page > 0 {
			page = *reqData.Page
		}
		if reqData.Limit != nil && *reqData.Limit > 0 {
			limit = *reqData.Limit
		}
		filter.Page = page
		filter.Limit = limit
		filter.Search = reqData.Search
		filter.Role = reqData.Role
		if reqData.Active != nil && *reqData.Active {
			cutoff := time.Now().Add(-time.Duration(config.AppConfig.ActiveWindowMinutes) * time.Minute)
			filter.ActiveSince = &cutoff
		}
	}

	users, total := userService.ListUsers(database.Database.Db, filter)

	result := make([]fiber.Map, len(users))
	for i, u := range users {
		result[i] = fiber.Map{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"role":          u.Role,
			"profile_image": u.ProfileImage,
			"last_login":    u.LastLogin,
			"last_seen_at":  u.LastSeenAt,
			"is_blocked":    u.IsBlocked,
			"created_at":    u.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetUserEnrollments gets one member with all their program enrollments
func AdminGetUserEnrollments(c *fiber.Ctx) error {
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

	targetUserID := c.Locals("targetUserID").(uint)

	var targetUser models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	enrollments := programService.GetUserEnrolledPrograms(database.Database.Db, targetUserID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member enrollments fetched successfully!", fiber.Map{
		"member": fiber.Map{
			"id":           targetUser.ID,
			"name":         targetUser.Name,
			"email":        targetUser.Email,
			"role":         targetUser.Role,
			"last_seen_at": targetUser.LastSeenAt,
		},
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
