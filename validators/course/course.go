package courseValidator

import (
	"strings"

	courseController "promptbase/controllers/course"
	"promptbase/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseBody validates the create/update course payload. An empty title
// blocks the request before any database call.
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseController.CourseInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
