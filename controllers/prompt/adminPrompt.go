package promptController

import (
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// PromptInput is the admin create/update payload.
type PromptInput struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Content     string   `json:"content" validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"omitempty,oneof=text image video"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Platform    string   `json:"platform"`
	Style       string   `json:"style"`
	ImageURL    string   `json:"image_url"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// CreatePrompt inserts a new prompt (admin only).
func CreatePrompt(c *fiber.Ctx) error {
	userId, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedPrompt").(*PromptInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	promptType := models.PromptType(reqData.Type)
	if promptType == "" {
		promptType = models.PromptTypeText
	}
	status := models.PromptStatus(reqData.Status)
	if status == "" {
		status = models.PromptStatusPublished
	}

	prompt := models.Prompt{
		Title:       reqData.Title,
		Content:     reqData.Content,
		Description: reqData.Description,
		Type:        promptType,
		Category:    reqData.Category,
		Tags:        datatypes.NewJSONSlice(reqData.Tags),
		Platform:    reqData.Platform,
		Style:       reqData.Style,
		ImageURL:    reqData.ImageURL,
		Status:      status,
		CreatedBy:   userId,
	}

	if err := database.Database.Db.Create(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create prompt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Prompt created successfully!", fiber.Map{
		"prompt": prompt,
	})
}

// UpdatePrompt updates an existing prompt in place (admin only).
func UpdatePrompt(c *fiber.Ctx) error {
	promptId := c.Params("id")

	reqData, ok := c.Locals("validatedPrompt").(*PromptInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var prompt models.Prompt
	if err := db.Where("id = ?", promptId).First(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prompt not found!", nil)
	}

	prompt.Title = reqData.Title
	prompt.Content = reqData.Content
	prompt.Description = reqData.Description
	if reqData.Type != "" {
		prompt.Type = models.PromptType(reqData.Type)
	}
	prompt.Category = reqData.Category
	prompt.Tags = datatypes.NewJSONSlice(reqData.Tags)
	prompt.Platform = reqData.Platform
	prompt.Style = reqData.Style
	prompt.ImageURL = reqData.ImageURL
	if reqData.Status != "" {
		prompt.Status = models.PromptStatus(reqData.Status)
	}

	if err := db.Save(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update prompt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prompt updated successfully!", fiber.Map{
		"prompt": prompt,
	})
}

// DeletePrompt removes a prompt and its votes, saves and views (admin only).
func DeletePrompt(c *fiber.Ctx) error {
	promptId := c.Params("id")

	db := database.Database.Db

	var prompt models.Prompt
	if err := db.Where("id = ?", promptId).First(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prompt not found!", nil)
	}

	db.Unscoped().Where("prompt_id = ?", promptId).Delete(&models.PromptVote{})
	db.Unscoped().Where("prompt_id = ?", promptId).Delete(&models.SavedPrompt{})
	db.Unscoped().Where("prompt_id = ?", promptId).Delete(&models.PromptView{})

	if err := db.Delete(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete prompt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prompt deleted successfully!", fiber.Map{
		"success": true,
	})
}
