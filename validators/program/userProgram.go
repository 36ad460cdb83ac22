package programValidator

import (
	"peakform/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnrollmentRequest is the optional payment body for enrolling in a program
type EnrollmentRequest struct {
	Cost          float64 `json:"cost"`
	PaymentStatus string  `json:"payment_status"`
}

// EnrollProgram validates the :id param plus the optional payment body
func EnrollProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid program id!", nil)
		}

		reqData := new(EnrollmentRequest)
		// Body is optional; a missing body means a free enrollment
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		errors := make(map[string]string)

		if reqData.Cost < 0 {
			errors["cost"] = "Cost cannot be negative!"
		}
		switch reqData.PaymentStatus {
		case "", "free", "paid", "pending":
		default:
			errors["payment_status"] = "Payment status must be free, paid or pending!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("programID", id)
		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the :enrollment_id route param
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("enrollment_id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// CourseID validates the :course_id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("course_id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// VideoProgress validates the watch-time heartbeat body
func VideoProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoID          string `json:"video_id"`
			WatchTimeSeconds int    `json:"watch_time_seconds"`
			IsCompleted      bool   `json:"is_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		videoID, err := uuid.Parse(reqData.VideoID)
		if err != nil {
			errors["video_id"] = "A valid video id is required!"
		}
		if reqData.WatchTimeSeconds < 0 {
			errors["watch_time_seconds"] = "Watch time cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("videoID", videoID)
		c.Locals("watchTimeSeconds", reqData.WatchTimeSeconds)
		c.Locals("isCompleted", reqData.IsCompleted)
		return c.Next()
	}
}
