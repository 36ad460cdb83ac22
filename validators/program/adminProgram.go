package programValidator

import (
	"strings"

	"peakform/middleware"
	programService "peakform/services/program"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SaveProgram validates the full program tree payload from the admin editor
func SaveProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(programService.ProgramGraph)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Program title is required!"
		}

		for _, course := range reqData.Courses {
			if strings.TrimSpace(course.Title) == "" {
				errors["courses"] = "Every course needs a title!"
				break
			}
			for _, video := range course.Videos {
				if strings.TrimSpace(video.Title) == "" {
					errors["videos"] = "Every video needs a title!"
					break
				}
				if video.Duration != "" {
					if _, ok := programService.DurationToSeconds(video.Duration); !ok {
						errors["videos"] = "Video durations must look like \"m:ss\"!"
						break
					}
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

// ProgramID validates the :id route param as a program id
func ProgramID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid program id!", nil)
		}

		c.Locals("programID", id)
		return c.Next()
	}
}

// VideoID validates the :video_id route param
func VideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("video_id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
		}

		c.Locals("videoID", id)
		return c.Next()
	}
}
