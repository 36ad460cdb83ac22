package controllers

import (
	"log"

	"peakform/database"
	"peakform/middleware"
	"peakform/models"
	programModels "peakform/models/program"
	programService "peakform/services/program"
	"peakform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminSaveProgram upserts the whole program tree from the editor
func AdminSaveProgram(c *fiber.Ctx) error {
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

	graph, ok := c.Locals("validatedProgram").(*programService.ProgramGraph)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	programID, err := programService.SaveProgram(database.Database.Db, graph)
	if err != nil {
		if err == programService.ErrEmptyTitle {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Program title is required!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program saved successfully!", fiber.Map{
		"program_id": programID,
	})
}

// AdminGetProgram loads the full program tree for the editor
func AdminGetProgram(c *fiber.Ctx) error {
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

	programID := c.Locals("programID").(uuid.UUID)

	graph := programService.LoadProgram(database.Database.Db, programID)
	if graph == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program fetched successfully!", graph)
}

// AdminListPrograms lists all active programs
func AdminListPrograms(c *fiber.Ctx) error {
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

	programs := programService.GetAllPrograms(database.Database.Db)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched successfully!", fiber.Map{
		"programs": programs,
		"total":    len(programs),
	})
}

// AdminDeleteProgram soft deletes a program
func AdminDeleteProgram(c *fiber.Ctx) error {
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

	programID := c.Locals("programID").(uuid.UUID)

	if !programService.DeleteProgram(database.Database.Db, programID) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program deleted successfully!", nil)
}

// AdminDeleteVideo hard deletes a single video
func AdminDeleteVideo(c *fiber.Ctx) error {
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

	videoID := c.Locals("videoID").(uuid.UUID)

	if !programService.DeleteVideo(database.Database.Db, videoID) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

// AdminUploadVideo stores a video binary and returns its public URL.
// If the video row already exists its URL is updated in place.
func AdminUploadVideo(c *fiber.Ctx) error {
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

	videoID := c.Locals("videoID").(uuid.UUID)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A video file is required!", nil)
	}

	url, err := utils.UploadVideoFile(file, videoID)
	if err != nil {
		log.Printf("Error uploading video %s: %v", videoID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload video: "+err.Error(), nil)
	}

	// The row may not exist yet while the editor is mid-authoring; the URL
	// lands on it with the next program save in that case
	if err := database.Database.Db.Model(&programModels.Video{}).
		Where("id = ?", videoID).
		Update("video_url", url).Error; err != nil {
		log.Printf("Error updating video URL for %s: %v", videoID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video uploaded successfully!", fiber.Map{
		"video_id":  videoID,
		"video_url": url,
	})
}
