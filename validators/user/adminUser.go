package userValidator

import (
	"strconv"
	"strings"

	"peakform/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserListQuery is the optional filter/paging query for the admin user list
type UserListQuery struct {
	Page   *int   `json:"page"`
	Limit  *int   `json:"limit"`
	Search string `json:"search"`
	Role   string `json:"role"`
	Active *bool  `json:"active"`
}

// UserList validates the admin user listing query parameters
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		switch reqData.Role {
		case "", "USER", "ADMIN":
		default:
			errors["role"] = "Role must be USER or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

// UserID validates the :user_id route param
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("user_id"))

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		c.Locals("targetUserID", uint(userID))
		return c.Next()
	}
}
