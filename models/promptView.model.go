package models

import "gorm.io/gorm"

// PromptView records a single detail-page view. UserID is 0 for anonymous
// viewers. The prompt's view_count is the row count per prompt.
type PromptView struct {
	gorm.Model
	PromptID string `gorm:"type:uuid;not null;index" json:"prompt_id"`
	UserID   uint   `gorm:"default:0" json:"user_id"`
}
