package promptController

import (
	"time"

	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedPromptDetails joins a saved row with its prompt for the saved list.
type SavedPromptDetails struct {
	PromptID   string                      `json:"prompt_id"`
	Title      string                      `json:"title"`
	Content    string                      `json:"content"`
	Type       models.PromptType           `json:"type"`
	Category   string                      `json:"category"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Platform   string                      `json:"platform"`
	SavedAt    time.Time                   `json:"saved_at"`
	FolderName string                      `json:"folder_name"`
	Notes      string                      `json:"notes"`
}

func recountSaves(db *gorm.DB, promptId string) int {
	var count int64
	db.Model(&models.SavedPrompt{}).Where("prompt_id = ?", promptId).Count(&count)
	db.Model(&models.Prompt{}).Where("id = ?", promptId).Update("save_count", int(count))
	return int(count)
}

// ListSavedPrompts returns the caller's saved prompts with details.
func ListSavedPrompts(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var saved []models.SavedPrompt
	if err := db.Where("user_id = ?", userId).Order("created_at desc").Find(&saved).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch saved prompts!", nil)
	}

	details := make([]SavedPromptDetails, 0, len(saved))
	for _, row := range saved {
		var prompt models.Prompt
		if err := db.Where("id = ?", row.PromptID).First(&prompt).Error; err != nil {
			// Prompt was deleted underneath the save; skip the orphan row.
			continue
		}
		details = append(details, SavedPromptDetails{
			PromptID:   prompt.ID,
			Title:      prompt.Title,
			Content:    prompt.Content,
			Type:       prompt.Type,
			Category:   prompt.Category,
			Tags:       prompt.Tags,
			Platform:   prompt.Platform,
			SavedAt:    row.CreatedAt,
			FolderName: row.FolderName,
			Notes:      row.Notes,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Saved prompts fetched!", fiber.Map{
		"savedPrompts": details,
	})
}

// SavePrompt saves a prompt for the caller. Saving an already-saved prompt
// is a Conflict, not a silent success.
func SavePrompt(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedSave").(*struct {
		PromptID   string `json:"promptId"`
		FolderName string `json:"folder_name"`
		Notes      string `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if prompt exists and is published
	var prompt models.Prompt
	if err := db.Where("id = ? AND status = ?", reqData.PromptID, models.PromptStatusPublished).First(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prompt not found!", nil)
	}

	// Unique (user, prompt) pair
	var existing models.SavedPrompt
	if err := db.Where("user_id = ? AND prompt_id = ?", userId, reqData.PromptID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Prompt already saved!", nil)
	}

	folder := reqData.FolderName
	if folder == "" {
		folder = "general"
	}

	saved := models.SavedPrompt{
		UserID:     userId,
		PromptID:   reqData.PromptID,
		FolderName: folder,
		Notes:      reqData.Notes,
	}
	if err := db.Create(&saved).Error; err != nil {
		// The unique index catches the race the pre-check missed.
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Prompt already saved!", nil)
	}

	recountSaves(db, reqData.PromptID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Prompt saved!", fiber.Map{
		"savedPrompt": saved,
	})
}

// UnsavePrompt removes a prompt from the caller's saved set.
func UnsavePrompt(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	promptId := c.Query("promptId")
	if promptId == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing promptId!", nil)
	}

	db := database.Database.Db

	if err := db.Where("user_id = ? AND prompt_id = ?", userId, promptId).
		Unscoped().Delete(&models.SavedPrompt{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unsave prompt!", nil)
	}

	recountSaves(db, promptId)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prompt removed from saved!", fiber.Map{
		"success": true,
	})
}
