package models

import "gorm.io/gorm"

// VoteType is the direction of a prompt vote
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// PromptVote holds at most one row per (user, prompt) pair. Changing
// direction overwrites the row in place; removing a vote deletes it.
type PromptVote struct {
	gorm.Model
	UserID   uint     `gorm:"not null;uniqueIndex:idx_vote_user_prompt" json:"user_id"`
	PromptID string   `gorm:"type:uuid;not null;uniqueIndex:idx_vote_user_prompt" json:"prompt_id"`
	VoteType VoteType `gorm:"type:varchar(8);not null" json:"vote_type"`
}
