package promptController

import (
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recountVotes recomputes a prompt's vote_count from the vote rows and
// returns the fresh value. The counter is server-authoritative; clients
// overwrite their optimistic deltas with this number.
func recountVotes(db *gorm.DB, promptId string) int {
	var up, down int64
	db.Model(&models.PromptVote{}).Where("prompt_id = ? AND vote_type = ?", promptId, models.VoteUp).Count(&up)
	db.Model(&models.PromptVote{}).Where("prompt_id = ? AND vote_type = ?", promptId, models.VoteDown).Count(&down)

	count := int(up - down)
	db.Model(&models.Prompt{}).Where("id = ?", promptId).Update("vote_count", count)
	return count
}

// CastVote upserts the caller's vote on a prompt. Re-voting the same
// direction is accepted and leaves the row unchanged.
func CastVote(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedVote").(*struct {
		PromptID string `json:"promptId"`
		VoteType string `json:"voteType"`
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

	// Upsert: update the existing (user, prompt) row or insert a new one
	var vote models.PromptVote
	err := db.Where("user_id = ? AND prompt_id = ?", userId, reqData.PromptID).First(&vote).Error
	if err == nil {
		vote.VoteType = models.VoteType(reqData.VoteType)
		if err := db.Save(&vote).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
		}
	} else {
		vote = models.PromptVote{
			UserID:   userId,
			PromptID: reqData.PromptID,
			VoteType: models.VoteType(reqData.VoteType),
		}
		if err := db.Create(&vote).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to vote!", nil)
		}
	}

	voteCount := recountVotes(db, reqData.PromptID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote recorded!", fiber.Map{
		"vote":       vote,
		"vote_count": voteCount,
	})
}

// RemoveVote deletes the caller's vote on a prompt.
func RemoveVote(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	promptId := c.Query("promptId")
	if promptId == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing promptId!", nil)
	}

	db := database.Database.Db

	if err := db.Where("user_id = ? AND prompt_id = ?", userId, promptId).
		Unscoped().Delete(&models.PromptVote{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove vote!", nil)
	}

	voteCount := recountVotes(db, promptId)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote removed!", fiber.Map{
		"success":    true,
		"vote_count": voteCount,
	})
}

// GetMyVotes lists the caller's votes, keyed by prompt id.
func GetMyVotes(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var votes []models.PromptVote
	if err := database.Database.Db.Where("user_id = ?", userId).Find(&votes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch votes!", nil)
	}

	byPrompt := make(map[string]models.VoteType, len(votes))
	for _, vote := range votes {
		byPrompt[vote.PromptID] = vote.VoteType
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Votes fetched!", fiber.Map{
		"votes": byPrompt,
	})
}
