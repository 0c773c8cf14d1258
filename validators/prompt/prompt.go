package promptValidator

import (
	"strings"

	promptController "promptbase/controllers/prompt"
	"promptbase/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PromptBody validates the admin create/update prompt payload via the
// struct tags on PromptInput.
func PromptBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(promptController.PromptInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				field := strings.ToLower(fieldErr.Field())
				switch fieldErr.Tag() {
				case "required":
					errors[field] = "This field is required!"
				case "min":
					errors[field] = "Value is too short!"
				case "oneof":
					errors[field] = "Value must be one of: " + fieldErr.Param()
				default:
					errors[field] = "Invalid value!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrompt", reqData)
		return c.Next()
	}
}

// Vote validates the vote payload.
func Vote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PromptID string `json:"promptId"`
			VoteType string `json:"voteType"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PromptID) == "" {
			errors["promptId"] = "promptId is required!"
		}
		if reqData.VoteType != "up" && reqData.VoteType != "down" {
			errors["voteType"] = "voteType must be 'up' or 'down'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVote", reqData)
		return c.Next()
	}
}

// Save validates the save-prompt payload.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PromptID   string `json:"promptId"`
			FolderName string `json:"folder_name"`
			Notes      string `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.PromptID) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"promptId": "promptId is required!",
			})
		}

		c.Locals("validatedSave", reqData)
		return c.Next()
	}
}
