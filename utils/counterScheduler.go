package utils

import (
	"fmt"
	"log"
	"time"

	"promptbase/database"
	"promptbase/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[COUNTER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileCounters recomputes the denormalized prompt counters from the
// vote/save/view relation tables. The handlers keep counters current on
// the happy path; this job is the authoritative correction for any drift
// left behind by failed or racing requests.
func ReconcileCounters() {
	db := database.Database.Db

	var prompts []models.Prompt
	if err := db.Select("id").Find(&prompts).Error; err != nil {
		logScheduler("Error fetching prompts: " + err.Error())
		return
	}

	corrected := 0
	for _, p := range prompts {
		var upCount, downCount, saveCount, viewCount int64

		db.Model(&models.PromptVote{}).Where("prompt_id = ? AND vote_type = ?", p.ID, models.VoteUp).Count(&upCount)
		db.Model(&models.PromptVote{}).Where("prompt_id = ? AND vote_type = ?", p.ID, models.VoteDown).Count(&downCount)
		db.Model(&models.SavedPrompt{}).Where("prompt_id = ?", p.ID).Count(&saveCount)
		db.Model(&models.PromptView{}).Where("prompt_id = ?", p.ID).Count(&viewCount)

		updates := map[string]interface{}{
			"vote_count": int(upCount - downCount),
			"save_count": int(saveCount),
			"view_count": int(viewCount),
		}

		result := db.Model(&models.Prompt{}).
			Where("id = ? AND (vote_count != ? OR save_count != ? OR view_count != ?)",
				p.ID, updates["vote_count"], updates["save_count"], updates["view_count"]).
			Updates(updates)
		if result.Error != nil {
			logScheduler("Error updating counters for prompt " + p.ID + ": " + result.Error.Error())
			continue
		}
		if result.RowsAffected > 0 {
			corrected++
		}
	}

	if corrected > 0 {
		logScheduler(fmt.Sprintf("Corrected counters on %d prompts", corrected))
	}
}

// StartCounterScheduler runs the counter reconciliation every 5 minutes.
func StartCounterScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 5m", ReconcileCounters); err != nil {
		log.Fatalf("Failed to register counter scheduler: %v", err)
	}

	c.Start()
	logScheduler("Counter scheduler started")
	return c
}
