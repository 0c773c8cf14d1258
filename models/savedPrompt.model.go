package models

import "gorm.io/gorm"

// SavedPrompt holds at most one row per (user, prompt) pair. A duplicate
// save hits the unique index and surfaces as a Conflict, unlike votes
// which upsert.
type SavedPrompt struct {
	gorm.Model
	UserID     uint   `gorm:"not null;uniqueIndex:idx_save_user_prompt" json:"user_id"`
	PromptID   string `gorm:"type:uuid;not null;uniqueIndex:idx_save_user_prompt" json:"prompt_id"`
	FolderName string `gorm:"default:'general'" json:"folder_name"`
	Notes      string `gorm:"type:text" json:"notes"`
}
