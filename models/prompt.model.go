package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PromptStatus defines the lifecycle status of a prompt
type PromptStatus string

const (
	PromptStatusDraft     PromptStatus = "draft"
	PromptStatusPublished PromptStatus = "published"
	PromptStatusArchived  PromptStatus = "archived"
)

// PromptType defines what kind of output a prompt produces
type PromptType string

const (
	PromptTypeText  PromptType = "text"
	PromptTypeImage PromptType = "image"
	PromptTypeVideo PromptType = "video"
)

// Prompt is the prompt-platform schema. Category is a first-class column
// here, not derived from tags as on Course.
type Prompt struct {
	ID          string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"not null" json:"title"`
	Content     string                      `gorm:"type:text;not null" json:"content"`
	Description string                      `gorm:"type:text" json:"description"`
	Type        PromptType                  `gorm:"type:varchar(10);default:'text'" json:"type"`
	Category    string                      `gorm:"index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Platform    string                      `json:"platform"`
	Style       string                      `json:"style"`
	ImageURL    string                      `gorm:"default:''" json:"image_url"`
	Status      PromptStatus                `gorm:"type:varchar(12);default:'published';index" json:"status"`

	// Denormalized counters, maintained by the vote/save/view handlers and
	// reconciled from the relation tables by the counter scheduler.
	ViewCount int `gorm:"default:0" json:"view_count"`
	VoteCount int `gorm:"default:0" json:"vote_count"`
	SaveCount int `gorm:"default:0" json:"save_count"`

	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
